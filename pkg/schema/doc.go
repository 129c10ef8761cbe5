// Package schema validates mutation and action payloads declared in store definitions.
//
// A Schema maps payload fields to types. Types are written as strings in
// definition files:
//
//	payload:
//	  title: string
//	  tags: "[string]"
//	  due: duration?
//
// A trailing "?" marks a field optional. Scalar payloads (Commit(ctx, "inc", 2))
// are checked against a single Type instead, see ValidatePayload.
package schema
