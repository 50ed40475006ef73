// Package provisioner implements the client for the remote provisioning API.
//
// The API accepts a JSON payload identifying one host and answers with a
// success envelope. Callers only depend on the binary success signal plus the
// failure reason; retry policy lives with the caller, not here.
package provisioner
