// Package retry provides the retry policy for remote provisioning calls.
//
// The [Do] function retries an operation with a configurable attempt budget
// and optional exponential backoff between attempts. By default attempts run
// back to back; a delay is only introduced when explicitly configured.
package retry
