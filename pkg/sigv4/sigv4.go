// Package sigv4 computes presigned PUT URLs for S3-compatible object stores
// using the AWS Signature Version 4 query-string signing scheme.
//
// Signing is a pure function of the inputs and the supplied clock; no network
// I/O happens here. The canonicalisation has to be bit-exact with the AWS
// specification (sorted query parameters, exact newline layout,
// slash-preserving key encoding) or the storage service rejects the upload
// with no hint as to why.
package sigv4

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	algorithm       = "AWS4-HMAC-SHA256"
	service         = "s3"
	unsignedPayload = "UNSIGNED-PAYLOAD"

	// DefaultExpiry bounds how long a presigned URL stays usable.
	DefaultExpiry = 10 * time.Minute
)

// Credentials are the static access keys for the storage account.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
}

// Presigner signs PUT requests against a single bucket on a single host.
type Presigner struct {
	// Host is the virtual service host, e.g. R2Host(accountID).
	Host string

	// Bucket is prepended to every object key in the canonical URI.
	Bucket string

	// Region defaults to "auto", which is what R2 expects.
	Region string

	Credentials Credentials
}

// R2Host returns the S3-compatible endpoint host for a Cloudflare R2 account.
func R2Host(accountID string) string {
	return accountID + ".r2.cloudflarestorage.com"
}

// PresignPut returns a URL authorising a single PUT of the given object key
// until now+expires. A zero expires falls back to DefaultExpiry.
func (p *Presigner) PresignPut(objectKey string, expires time.Duration, now time.Time) string {
	if expires <= 0 {
		expires = DefaultExpiry
	}
	region := p.Region
	if region == "" {
		region = "auto"
	}

	utc := now.UTC()
	amzDate := utc.Format("20060102T150405Z")
	date := utc.Format("20060102")
	scope := date + "/" + region + "/" + service + "/aws4_request"

	// Slashes inside the object key stay literal so the key keeps its
	// path-like shape in the signed URI.
	canonicalURI := "/" + p.Bucket + "/" + uriEncode(objectKey, true)

	params := map[string]string{
		"X-Amz-Algorithm":     algorithm,
		"X-Amz-Credential":    uriEncode(p.Credentials.AccessKeyID+"/"+scope, false),
		"X-Amz-Date":          amzDate,
		"X-Amz-Expires":       strconv.Itoa(int(expires.Seconds())),
		"X-Amz-SignedHeaders": "host",
	}
	canonicalQuery := canonicalQueryString(params)

	canonicalRequest := strings.Join([]string{
		"PUT",
		canonicalURI,
		canonicalQuery,
		"host:" + p.Host,
		"",
		"host",
		unsignedPayload,
	}, "\n")

	hashedRequest := sha256.Sum256([]byte(canonicalRequest))
	stringToSign := strings.Join([]string{
		algorithm,
		amzDate,
		scope,
		hex.EncodeToString(hashedRequest[:]),
	}, "\n")

	signature := hex.EncodeToString(hmacSHA256(signingKey(p.Credentials.SecretAccessKey, date, region), stringToSign))

	return "https://" + p.Host + canonicalURI + "?" + canonicalQuery + "&X-Amz-Signature=" + signature
}

// signingKey derives the per-day signing key by chained HMAC-SHA256.
func signingKey(secret, date, region string) []byte {
	kDate := hmacSHA256([]byte("AWS4"+secret), date)
	kRegion := hmacSHA256(kDate, region)
	kService := hmacSHA256(kRegion, service)
	return hmacSHA256(kService, "aws4_request")
}

func hmacSHA256(key []byte, msg string) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(msg))
	return mac.Sum(nil)
}

// canonicalQueryString joins the parameters sorted lexicographically by key.
// SigV4 requires sorted order; values arrive pre-encoded.
func canonicalQueryString(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	return strings.Join(pairs, "&")
}

// uriEncode percent-encodes s per the SigV4 rules: unreserved characters
// (A-Z a-z 0-9 - . _ ~) pass through, everything else becomes uppercase %XX
// over its UTF-8 bytes. keepSlash leaves '/' literal for path encoding.
func uriEncode(s string, keepSlash bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9',
			c == '-', c == '.', c == '_', c == '~':
			b.WriteByte(c)
		case c == '/' && keepSlash:
			b.WriteByte(c)
		default:
			const hexDigits = "0123456789ABCDEF"
			b.WriteByte('%')
			b.WriteByte(hexDigits[c>>4])
			b.WriteByte(hexDigits[c&0x0F])
		}
	}
	return b.String()
}
