// Package retention prunes old audit records on a cron schedule, by age
// and by total record count.
package retention
