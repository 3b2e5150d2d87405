package figma

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFileKey(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "valid /file/ URL",
			url:  "https://www.figma.com/file/ABC123XYZ/Design-Name",
			want: "ABC123XYZ",
		},
		{
			name: "valid /design/ URL",
			url:  "https://www.figma.com/design/ABC123XYZ/Design-Name",
			want: "ABC123XYZ",
		},
		{
			name: "URL with node-id parameter",
			url:  "https://www.figma.com/design/4gkABR5gEZnIvlCaXmA4KI/Makis-s-file?node-id=11933-305884",
			want: "4gkABR5gEZnIvlCaXmA4KI",
		},
		{
			name: "URL with additional parameters",
			url:  "https://www.figma.com/design/4gkABR5gEZnIvlCaXmA4KI/Makis-s-file?node-id=11933-305884&t=ObvUckUHZc8tSjeT-1",
			want: "4gkABR5gEZnIvlCaXmA4KI",
		},
		{
			name: "URL without www subdomain",
			url:  "https://figma.com/file/ABC123XYZ/Design-Name",
			want: "ABC123XYZ",
		},
		{
			name: "URL with http protocol",
			url:  "http://www.figma.com/file/ABC123XYZ/Design-Name",
			want: "ABC123XYZ",
		},
		{
			name: "URL with trailing slash",
			url:  "https://www.figma.com/file/ABC123XYZ/",
			want: "ABC123XYZ",
		},
		{
			name:    "invalid URL - missing file key",
			url:     "https://www.figma.com/file/",
			want:    "",
			wantErr: true,
		},
		{
			name:    "invalid URL - wrong domain",
			url:     "https://www.example.com/file/ABC123XYZ",
			want:    "",
			wantErr: true,
		},
		{
			name:    "invalid URL - wrong path",
			url:     "https://www.figma.com/dashboard/ABC123XYZ",
			want:    "",
			wantErr: true,
		},
		{
			name:    "empty URL",
			url:     "",
			want:    "",
			wantErr: true,
		},
		{
			name: "file key with mixed alphanumeric",
			url:  "https://www.figma.com/file/aB1cD2eF3gH4iJ5kL6/MyDesign",
			want: "aB1cD2eF3gH4iJ5kL6",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractFileKey(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractNodeIDs(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    []string
		wantErr bool
	}{
		{
			name: "single node-id with colon",
			url:  "https://www.figma.com/file/ABC123/Design?node-id=123:456",
			want: []string{"123:456"},
		},
		{
			name: "single node-id with dash (URL-encoded)",
			url:  "https://www.figma.com/design/4gkABR5gEZnIvlCaXmA4KI/Makis-s-file?node-id=11933-305884",
			want: []string{"11933:305884"},
		},
		{
			name: "node-id with additional parameters",
			url:  "https://www.figma.com/design/4gkABR5gEZnIvlCaXmA4KI/Makis-s-file?node-id=11933-305884&t=ObvUckUHZc8tSjeT-1",
			want: []string{"11933:305884"},
		},
		{
			name: "multiple node-ids with colons",
			url:  "https://www.figma.com/file/ABC123/Design?node-id=123:456,789:012",
			want: []string{"123:456", "789:012"},
		},
		{
			name: "multiple node-ids with dashes",
			url:  "https://www.figma.com/file/ABC123/Design?node-id=123-456,789-012",
			want: []string{"123:456", "789:012"},
		},
		{
			name: "multiple node-ids with mixed format",
			url:  "https://www.figma.com/file/ABC123/Design?node-id=123:456,789-012",
			want: []string{"123:456", "789:012"},
		},
		{
			name: "hash fragment format single node",
			url:  "https://www.figma.com/file/ABC123/Design#123:456",
			want: []string{"123:456"},
		},
		{
			name: "hash fragment format multiple nodes",
			url:  "https://www.figma.com/file/ABC123/Design#123:456,789:012",
			want: []string{"123:456", "789:012"},
		},
		{
			name: "path format single node",
			url:  "https://www.figma.com/file/ABC123/Design/nodes/123:456",
			want: []string{"123:456"},
		},
		{
			name: "path format multiple nodes",
			url:  "https://www.figma.com/file/ABC123/Design/nodes/123:456,789:012",
			want: []string{"123:456", "789:012"},
		},
		{
			name: "no node-ids in URL",
			url:  "https://www.figma.com/file/ABC123/Design",
			want: []string{},
		},
		{
			name: "node-id with spaces (should be trimmed)",
			url:  "https://www.figma.com/file/ABC123/Design?node-id=123:456, 789:012",
			want: []string{"123:456", "789:012"},
		},
		{
			name: "duplicate node-ids (should deduplicate)",
			url:  "https://www.figma.com/file/ABC123/Design?node-id=123:456,123:456,789:012",
			want: []string{"123:456", "789:012"},
		},
		{
			name: "node-id as first parameter",
			url:  "https://www.figma.com/file/ABC123/Design?node-id=123:456&other=value",
			want: []string{"123:456"},
		},
		{
			name: "node-id as middle parameter",
			url:  "https://www.figma.com/file/ABC123/Design?first=value&node-id=123:456&last=value",
			want: []string{"123:456"},
		},
		{
			name: "empty node-id parameter",
			url:  "https://www.figma.com/file/ABC123/Design?node-id=",
			want: []string{},
		},
		{
			name: "node-id with long numeric values",
			url:  "https://www.figma.com/file/ABC123/Design?node-id=999999:888888",
			want: []string{"999999:888888"},
		},
		{
			name: "percent-encoded separator",
			url:  "https://www.figma.com/design/ABC123/Design?node-id=1-2%2C3-4",
			want: []string{"1:2", "3:4"},
		},
		{
			name:    "malformed escape",
			url:     "https://www.figma.com/design/ABC123/Design?node-id=1-2%ZZ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractNodeIDs(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeduplicateNodeIDs(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want []string
	}{
		{
			name: "no duplicates",
			ids:  []string{"123:456", "789:012", "345:678"},
			want: []string{"123:456", "789:012", "345:678"},
		},
		{
			name: "with duplicates",
			ids:  []string{"123:456", "789:012", "123:456", "345:678"},
			want: []string{"123:456", "789:012", "345:678"},
		},
		{
			name: "all duplicates",
			ids:  []string{"123:456", "123:456", "123:456"},
			want: []string{"123:456"},
		},
		{
			name: "empty slice",
			ids:  []string{},
			want: []string{},
		},
		{
			name: "single element",
			ids:  []string{"123:456"},
			want: []string{"123:456"},
		},
		{
			name: "preserves order",
			ids:  []string{"789:012", "123:456", "789:012", "345:678", "123:456"},
			want: []string{"789:012", "123:456", "345:678"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deduplicateNodeIDs(tt.ids))
		})
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("token", WithBaseURL(srv.URL), WithRetryDelay(time.Millisecond))
}

func TestClient_GetFile(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/KEY", r.URL.Path)
		assert.Equal(t, "shared", r.URL.Query().Get("plugin_data"))
		assert.Equal(t, "token", r.Header.Get("X-Figma-Token"))
		w.Write([]byte(`{"name":"Shop","document":{"id":"0:0","type":"DOCUMENT"},"styles":{"1:1":{"name":"Red","styleType":"FILL"}}}`))
	})

	resp, err := c.GetFile(context.Background(), "KEY")
	require.NoError(t, err)
	assert.Equal(t, "Shop", resp.Name)
	assert.Equal(t, "FILL", resp.Styles["1:1"].StyleType)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"id":"u1","handle":"Ada"}`))
	})

	me, err := c.GetMe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ada", me.Handle)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_RetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.GetMe(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Equal(t, int32(maxRetries), calls.Load())
}

func TestClient_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":404,"err":"Not found"}`))
	})

	_, err := c.GetFile(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_ContextCancelStopsRetry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	c := NewClient("token", WithBaseURL(srv.URL), WithRetryDelay(time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.GetMe(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_GetImages(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/images/KEY", r.URL.Path)
		assert.Equal(t, "1:1,1:2", r.URL.Query().Get("ids"))
		assert.Equal(t, "png", r.URL.Query().Get("format"))
		assert.Equal(t, "2", r.URL.Query().Get("scale"))
		w.Write([]byte(`{"err":null,"images":{"1:1":"https://cdn/1.png","1:2":null}}`))
	})

	resp, err := c.GetImages(context.Background(), "KEY", []string{"1:1", "1:2"}, "png", 2)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/1.png", resp.Images["1:1"])
	assert.Empty(t, resp.Images["1:2"])
}

func TestClient_GetImagesRenderError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"err":"Invalid parameter","images":{}}`))
	})

	_, err := c.GetImages(context.Background(), "KEY", []string{"1:1"}, "png", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid parameter")
}
