// Package store persists the verifier-side credential table.
//
// Each row maps a derived API token (64 hex characters) to the device it
// was provisioned for. The verifier looks tokens up by value: a device that
// regenerates its secret from the PUF presents the token, and a hit means
// the device is who it claims to be. The secret itself never appears here
// in any other form; the token is the credential.
package store
