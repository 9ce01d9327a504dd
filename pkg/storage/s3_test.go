package storage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 serves the subset of path-style S3 calls used by S3Store.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}

	switch req.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		if decoded, ok := decodeChunked(body); ok {
			body = decoded
		}
		f.objects[key] = body
		f.types[key] = req.Header.Get("Content-Type")
		return reply(http.StatusOK, nil, http.Header{"ETag": {`"etag"`}}), nil
	case http.MethodGet:
		body, ok := f.objects[key]
		if !ok {
			msg := []byte(`<?xml version="1.0"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`)
			return reply(http.StatusNotFound, msg, http.Header{"Content-Type": {"application/xml"}}), nil
		}
		return reply(http.StatusOK, body, http.Header{
			"Content-Length": {strconv.Itoa(len(body))},
			"Content-Type":   {f.types[key]},
			"Last-Modified":  {time.Now().UTC().Format(http.TimeFormat)},
		}), nil
	case http.MethodDelete:
		delete(f.objects, key)
		return reply(http.StatusNoContent, nil, http.Header{}), nil
	}
	return reply(http.StatusNotImplemented, nil, http.Header{}), nil
}

func reply(status int, body []byte, h http.Header) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(bytes.NewReader(body)), Header: h}
}

// decodeChunked unwraps a single-chunk aws-chunked payload.
func decodeChunked(b []byte) ([]byte, bool) {
	parts := strings.Split(string(b), "\r\n")
	if len(parts) < 3 {
		return nil, false
	}
	size, err := strconv.ParseInt(strings.SplitN(parts[0], ";", 2)[0], 16, 64)
	if err != nil || int64(len(parts[1])) != size || !strings.HasPrefix(parts[2], "0") {
		return nil, false
	}
	return []byte(parts[1]), true
}

func newFakeS3Store(t *testing.T) (*S3Store, *fakeS3) {
	t.Helper()
	fake := &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion("us-east-1"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("AKIA", "SECRET", "")),
	)
	require.NoError(t, err)
	store := newS3Store(awsCfg, S3Config{Bucket: "exports", Endpoint: "https://fake.s3.local", PathStyle: true}, func(o *s3.Options) {
		o.HTTPClient = &http.Client{Transport: fake}
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
	})
	return store, fake
}

func TestS3StoreSaveOpenDelete(t *testing.T) {
	store, fake := newFakeS3Store(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "exports/abc.csv", "text/csv", []byte("a,b\n1,2\n")))
	assert.Equal(t, "text/csv", fake.types["exports/abc.csv"])

	rc, err := store.Open(ctx, "exports/abc.csv")
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "a,b\n1,2\n", string(body))

	require.NoError(t, store.Delete(ctx, "exports/abc.csv"))
	_, err = store.Open(ctx, "exports/abc.csv")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestS3StorePresignGet(t *testing.T) {
	store, _ := newFakeS3Store(t)
	url, err := store.PresignGet(context.Background(), "exports/abc.pdf", time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "https://fake.s3.local/exports/exports/abc.pdf")
	assert.Contains(t, url, "X-Amz-Expires=60")
	assert.Equal(t, "s3", store.Driver())
}
