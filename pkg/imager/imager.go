package imager

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/hellenic-development/figma-claude/pkg/figma"
	"github.com/hellenic-development/figma-claude/pkg/session"
)

// DefaultCacheSize is the number of rendered images kept in memory.
const DefaultCacheSize = 64

const maxNodesPerRequest = 100
const maxParallelDownloads = 5

// Fetcher renders nodes through the Figma image API and downloads the results.
// Downloads are cached by node, format and scale.
type Fetcher struct {
	client     *figma.Client
	fileKey    string
	httpClient *http.Client

	mu        sync.Mutex // guards cacheSize
	cacheSize int
	cache     *lru.Cache[string, []byte]
}

// NewFetcher creates a Fetcher for one file. cacheSize <= 0 selects DefaultCacheSize.
func NewFetcher(client *figma.Client, fileKey string, cacheSize int) (*Fetcher, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, []byte](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create image cache: %w", err)
	}
	return &Fetcher{
		client:     client,
		fileKey:    fileKey,
		httpClient: http.DefaultClient,
		cacheSize:  cacheSize,
		cache:      cache,
	}, nil
}

// reserve grows the cache so n more images fit without evicting current entries.
func (f *Fetcher) reserve(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if need := f.cache.Len() + n; need > f.cacheSize {
		f.cache.Resize(need)
		f.cacheSize = need
	}
}

func cacheKey(nodeID, format string, scale float64) string {
	return fmt.Sprintf("%s@%g.%s", nodeID, scale, format)
}

// Export returns the rendered image of one node.
func (f *Fetcher) Export(ctx context.Context, nodeID, format string, scale float64) ([]byte, error) {
	key := cacheKey(nodeID, format, scale)
	if data, ok := f.cache.Get(key); ok {
		return data, nil
	}

	imgResp, err := f.client.GetImages(ctx, f.fileKey, []string{nodeID}, format, scale)
	if err != nil {
		return nil, fmt.Errorf("failed to get images from Figma API: %w", err)
	}
	imageURL := imgResp.Images[nodeID]
	if imageURL == "" {
		return nil, fmt.Errorf("no image URL returned for node %s", nodeID)
	}

	data, err := f.download(ctx, imageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", nodeID, err)
	}
	f.cache.Add(key, data)
	return data, nil
}

// Prefetch renders many nodes in batched API requests and downloads them
// concurrently into the cache, which grows to hold every prefetched image.
// Per-image failures are returned, not fatal.
func (f *Fetcher) Prefetch(ctx context.Context, nodeIDs []string, format string, scale float64) ([]error, error) {
	var errs []error
	f.reserve(len(nodeIDs))

	for i := 0; i < len(nodeIDs); i += maxNodesPerRequest {
		end := i + maxNodesPerRequest
		if end > len(nodeIDs) {
			end = len(nodeIDs)
		}
		batch := nodeIDs[i:end]

		imgResp, err := f.client.GetImages(ctx, f.fileKey, batch, format, scale)
		if err != nil {
			return errs, fmt.Errorf("failed to get images from Figma API: %w", err)
		}

		// Download images concurrently with a semaphore.
		var wg sync.WaitGroup
		sem := make(chan struct{}, maxParallelDownloads)
		var mu sync.Mutex

		for nodeID, imageURL := range imgResp.Images {
			if imageURL == "" {
				mu.Lock()
				errs = append(errs, fmt.Errorf("no image URL returned for node %s", nodeID))
				mu.Unlock()
				continue
			}

			wg.Add(1)
			go func(nID, url string) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()

				data, err := f.download(ctx, url)
				if err != nil {
					mu.Lock()
					errs = append(errs, fmt.Errorf("failed to download %s: %w", nID, err))
					mu.Unlock()
					return
				}
				f.cache.Add(cacheKey(nID, format, scale), data)
			}(nodeID, imageURL)
		}

		wg.Wait()
	}

	return errs, nil
}

// download performs an HTTP GET and returns the response body.
func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP GET failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d downloading image", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// ExportedAsset represents a single screen image written to disk.
type ExportedAsset struct {
	NodeID   string
	NodeName string
	FileName string
}

// ExportResult holds the results of a WriteScreens call.
type ExportResult struct {
	Assets []ExportedAsset
	Errors []error // non-fatal per-screen failures
}

// WriteScreens decodes the base64 PNG of every screen into outputDir, using
// kebab-case file names with the 2x suffix. Colliding names get a counter.
func WriteScreens(screens []session.Screen, outputDir string) (*ExportResult, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %q: %w", outputDir, err)
	}

	result := &ExportResult{}
	usedNames := make(map[string]int) // track filename collisions

	for _, screen := range screens {
		data, err := base64.StdEncoding.DecodeString(screen.Image)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to decode image of %s: %w", screen.Name, err))
			continue
		}

		fileName := buildFileName(screen.Name, screen.ID, "png", 2)
		if count, exists := usedNames[fileName]; exists {
			ext := filepath.Ext(fileName)
			base := strings.TrimSuffix(fileName, ext)
			usedNames[fileName] = count + 1
			fileName = fmt.Sprintf("%s-%d%s", base, count+1, ext)
		} else {
			usedNames[fileName] = 1
		}

		destPath := filepath.Join(outputDir, fileName)
		if err := os.WriteFile(destPath, data, 0644); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to write file %q: %w", destPath, err))
			continue
		}

		result.Assets = append(result.Assets, ExportedAsset{
			NodeID:   screen.ID,
			NodeName: screen.Name,
			FileName: fileName,
		})
	}

	return result, nil
}

// buildFileName creates a sanitized filename from a node name.
// Uses kebab-case, adds @2x/@3x suffix for raster scales > 1,
// falls back to sanitized node ID if name is empty.
func buildFileName(nodeName, nodeID, format string, scale float64) string {
	name := nodeName
	if name == "" {
		name = nodeID
	}

	name = toKebabCase(name)
	if name == "" {
		name = "screen"
	}

	// Add scale suffix for raster formats with scale > 1.
	scaleSuffix := ""
	if scale > 1 && format != "svg" && format != "pdf" {
		scaleSuffix = fmt.Sprintf("@%gx", scale)
	}

	return fmt.Sprintf("%s%s.%s", name, scaleSuffix, format)
}

// toKebabCase converts a string to kebab-case format (lowercase with hyphens).
func toKebabCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")

	var result strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			result.WriteRune(r)
		}
	}

	return result.String()
}
