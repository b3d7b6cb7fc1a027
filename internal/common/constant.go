package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// LockboxTokenHeaderName carries the lockbox capability token for calls
// touching private entries.
const LockboxTokenHeaderName = "lockbox_token"

// DateLayout is the wire and storage layout of logical (calendar) dates.
const DateLayout = "2006-01-02"
