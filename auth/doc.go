// Package auth implements the stateless token gate for the portfolio
// API: HMAC-signed bearer tokens carrying an identity snapshot, their
// validation, and the per-operation access policy decision.
package auth
