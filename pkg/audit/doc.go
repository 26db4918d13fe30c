// Package audit records policy decisions to durable storage so operators
// can answer "why was this connection blocked" after the fact.
//
// The recorder observes every decision the engine makes and writes one
// Record per decision. Storage backends live in the storage subpackage;
// retention pruning lives in the retention subpackage.
package audit
