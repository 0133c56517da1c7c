package media

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/enovcorp/academy-core/internal/config"
)

// Store talks SigV4 to an S3-compatible bucket holding the academy media.
// Only the verbs the catalog needs are implemented: put a blob, delete a
// blob, and map a public URL back to its object key.
type Store struct {
	endpoint     *url.URL
	bucket       string
	region       string
	accessKey    string
	secretKey    string
	customDomain string
	pathStyle    bool
	mediaPath    string
	client       *http.Client
}

func NewStore(opts config.StorageConfig) (*Store, error) {
	bucket := strings.TrimSpace(opts.Bucket)
	region := strings.TrimSpace(opts.Region)
	accessKey := strings.TrimSpace(opts.AccessKeyID)
	secretKey := strings.TrimSpace(opts.SecretAccessKey)
	if bucket == "" || region == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("incomplete storage config: bucket/region/access_key_id/secret_access_key are required")
	}

	endpoint := strings.TrimSpace(opts.Endpoint)
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://s3.%s.amazonaws.com", region)
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}
	endpoint = strings.TrimSuffix(endpoint, "/")

	parsed, err := url.Parse(endpoint)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid storage endpoint: %s", endpoint)
	}

	pathStyle := opts.PathStyleAccess
	if opts.Endpoint != "" && !opts.PathStyleAccess {
		pathStyle = true
	}

	return &Store{
		endpoint:     parsed,
		bucket:       bucket,
		region:       region,
		accessKey:    accessKey,
		secretKey:    secretKey,
		customDomain: strings.TrimRight(strings.TrimSpace(opts.CustomDomain), "/"),
		pathStyle:    pathStyle,
		mediaPath:    strings.Trim(strings.TrimSpace(opts.MediaPath), "/"),
		client:       &http.Client{Timeout: 45 * time.Second},
	}, nil
}

// Upload writes payload under objectKey and returns the public URL.
func (s *Store) Upload(ctx context.Context, objectKey string, payload []byte, contentType string) (string, error) {
	key := normalizeObjectKey(objectKey)
	if key == "" {
		return "", fmt.Errorf("invalid storage object key")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	headers := map[string]string{
		"content-length": strconv.Itoa(len(payload)),
		"content-type":   contentType,
	}
	resp, err := s.do(ctx, http.MethodPut, key, payload, headers)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
		return "", fmt.Errorf("storage upload failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return s.PublicURL(key), nil
}

// Delete removes one object. A 404 counts as success: the prune only cares
// that the blob is gone.
func (s *Store) Delete(ctx context.Context, objectKey string) error {
	key := normalizeObjectKey(objectKey)
	if key == "" {
		return fmt.Errorf("invalid storage object key")
	}

	resp, err := s.do(ctx, http.MethodDelete, key, nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
		return fmt.Errorf("storage delete failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// Remove deletes a batch of objects, stopping at the first failure so the
// caller can abort before touching rows.
func (s *Store) Remove(ctx context.Context, paths []string) error {
	for _, path := range paths {
		if err := s.Delete(ctx, path); err != nil {
			return fmt.Errorf("delete %s: %w", path, err)
		}
	}
	return nil
}

// PublicURL returns the URL readers use for objectKey.
func (s *Store) PublicURL(objectKey string) string {
	key := normalizeObjectKey(objectKey)
	if s.customDomain != "" {
		return s.customDomain + "/" + key
	}
	requestURL, _, _ := s.buildTarget(key)
	return requestURL
}

// PathFromURL maps a public media URL back to its object key. URLs that do
// not point into this bucket's media prefix report false, so foreign URLs
// pasted into a record never trigger a delete.
func (s *Store) PathFromURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	var key string
	switch {
	case s.customDomain != "" && strings.HasPrefix(raw, s.customDomain+"/"):
		key = strings.TrimPrefix(raw, s.customDomain+"/")
	default:
		parsed, err := url.Parse(raw)
		if err != nil || parsed.Host == "" {
			return "", false
		}
		_, _, host := s.buildTarget("")
		if !strings.EqualFold(parsed.Host, host) {
			return "", false
		}
		key = strings.TrimPrefix(parsed.Path, "/")
		if s.pathStyle {
			if !strings.HasPrefix(key, s.bucket+"/") {
				return "", false
			}
			key = strings.TrimPrefix(key, s.bucket+"/")
		}
	}

	key = normalizeObjectKey(key)
	if decoded, err := url.PathUnescape(key); err == nil {
		key = decoded
	}
	if s.mediaPath != "" && !strings.HasPrefix(key, s.mediaPath+"/") {
		return "", false
	}
	if key == "" {
		return "", false
	}
	return key, true
}

func (s *Store) do(ctx context.Context, method, objectKey string, payload []byte, extraHeaders map[string]string) (*http.Response, error) {
	requestURL, canonicalURI, host := s.buildTarget(objectKey)

	now := time.Now().UTC()
	xAmzDate := now.Format("20060102T150405Z")
	dateStamp := now.Format("20060102")
	payloadHash := sha256Hex(payload)

	headers := map[string]string{
		"host":                 host,
		"x-amz-content-sha256": payloadHash,
		"x-amz-date":           xAmzDate,
	}
	for k, v := range extraHeaders {
		headers[strings.ToLower(k)] = v
	}

	sortedKeys := make([]string, 0, len(headers))
	for k := range headers {
		sortedKeys = append(sortedKeys, k)
	}
	sort.Strings(sortedKeys)

	canonicalHeaderLines := make([]string, 0, len(sortedKeys))
	signedHeaders := make([]string, 0, len(sortedKeys))
	for _, k := range sortedKeys {
		canonicalHeaderLines = append(canonicalHeaderLines, k+":"+strings.TrimSpace(headers[k]))
		signedHeaders = append(signedHeaders, k)
	}
	canonicalHeaders := strings.Join(canonicalHeaderLines, "\n")
	signedHeadersStr := strings.Join(signedHeaders, ";")

	canonicalRequest := strings.Join([]string{
		method,
		canonicalURI,
		"",
		canonicalHeaders + "\n",
		signedHeadersStr,
		payloadHash,
	}, "\n")

	credentialScope := dateStamp + "/" + s.region + "/s3/aws4_request"
	stringToSign := strings.Join([]string{
		"AWS4-HMAC-SHA256",
		xAmzDate,
		credentialScope,
		sha256Hex([]byte(canonicalRequest)),
	}, "\n")

	signingKey := deriveSigningKey(s.secretKey, dateStamp, s.region, "s3")
	signature := hex.EncodeToString(hmacSHA256(signingKey, stringToSign))
	authorization := "AWS4-HMAC-SHA256 Credential=" + s.accessKey + "/" + credentialScope +
		", SignedHeaders=" + signedHeadersStr +
		", Signature=" + signature

	var body io.Reader
	if len(payload) > 0 {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, err
	}
	req.Host = host
	for _, k := range sortedKeys {
		req.Header.Set(k, headers[k])
	}
	req.Header.Set("Authorization", authorization)

	return s.client.Do(req)
}

func (s *Store) buildTarget(objectKey string) (requestURL, canonicalURI, host string) {
	encodedKey := encodeObjectKey(objectKey)
	basePath := strings.TrimSuffix(s.endpoint.Path, "/")

	if s.pathStyle {
		canonicalURI = joinURLPath(basePath, s.bucket, encodedKey)
		host = s.endpoint.Host
		requestURL = s.endpoint.Scheme + "://" + host + canonicalURI
		return requestURL, canonicalURI, host
	}

	host = s.endpoint.Host
	if !strings.HasPrefix(strings.ToLower(host), strings.ToLower(s.bucket)+".") {
		host = s.bucket + "." + host
	}
	canonicalURI = joinURLPath(basePath, encodedKey)
	requestURL = s.endpoint.Scheme + "://" + host + canonicalURI
	return requestURL, canonicalURI, host
}

func normalizeObjectKey(key string) string {
	key = strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	key = strings.TrimPrefix(key, "/")
	for strings.Contains(key, "//") {
		key = strings.ReplaceAll(key, "//", "/")
	}
	return key
}

func encodeObjectKey(key string) string {
	key = normalizeObjectKey(key)
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

func joinURLPath(parts ...string) string {
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		for _, seg := range strings.Split(p, "/") {
			seg = strings.TrimSpace(seg)
			if seg == "" {
				continue
			}
			segments = append(segments, seg)
		}
	}
	if len(segments) == 0 {
		return "/"
	}
	return "/" + strings.Join(segments, "/")
}

func sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func hmacSHA256(key []byte, data string) []byte {
	mac := hmac.New(sha256.New, key)
	_, _ = mac.Write([]byte(data))
	return mac.Sum(nil)
}

func deriveSigningKey(secretKey, dateStamp, region, service string) []byte {
	kDate := hmacSHA256([]byte("AWS4"+secretKey), dateStamp)
	kRegion := hmacSHA256(kDate, region)
	kService := hmacSHA256(kRegion, service)
	return hmacSHA256(kService, "aws4_request")
}
