package respond

import "regexp"

var (
	// user:password@ in DSNs
	dbPasswordPattern = regexp.MustCompile(`://([^:/@]+):([^@]+)@`)
	// password=... in key/value DSNs
	kvPasswordPattern = regexp.MustCompile(`(?i)(password=)[^\s&]+`)
	// AWS access key IDs
	awsKeyIDPattern = regexp.MustCompile(`\b(AKIA|ASIA)[A-Z0-9]{16}\b`)
	// X-Amz-Credential / X-Amz-Signature query values in presigned URLs
	amzQueryPattern = regexp.MustCompile(`(X-Amz-(?:Credential|Signature|Security-Token)=)[^&\s"]+`)
)

// SanitizeError returns err's message with credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = kvPasswordPattern.ReplaceAllString(msg, "${1}****")
	msg = awsKeyIDPattern.ReplaceAllString(msg, "${1}****")
	msg = amzQueryPattern.ReplaceAllString(msg, "${1}****")
	return msg
}
