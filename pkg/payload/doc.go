// Package payload turns already-validated field values into the exact text a
// QR symbol embeds. Each function covers one scanner micro-format: SMS and
// mail URIs (RFC 5724 / RFC 6068), `geo:` coordinates, the `WIFI:` network
// string and vCard 3.0 contact blocks. Functions are pure and never trim or
// validate their input; callers in pkg/content own those rules.
package payload
