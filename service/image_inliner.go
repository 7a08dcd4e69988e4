package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-faster/errors"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"catalog-studio/metrics"
	"catalog-studio/models"
)

// DriveScheme prefixes product image references stored in Google Drive
const DriveScheme = "drive://"

// Image defaults
const (
	defaultMaxDimension = 800
	defaultQuality      = 75
	defaultConcurrency  = 4
	maxFetchBytes       = 20 << 20
)

// InlineOptions configures image inlining
type InlineOptions struct {
	// BaseURL resolves root-relative references such as /images/1.jpg
	BaseURL      string
	MaxDimension int
	Quality      int
	Concurrency  int
	// FetchRemote also inlines absolute http(s) references
	FetchRemote bool
}

// ImageInliner turns product image references into downscaled data URIs so
// an exported document needs no network access.
type ImageInliner struct {
	log    *zap.Logger
	drive  DriveServiceInterface
	client *http.Client
	opts   InlineOptions
}

// NewImageInliner creates an ImageInliner. drive may be nil, in which case
// drive:// references are dropped.
func NewImageInliner(log *zap.Logger, drive DriveServiceInterface, client *http.Client, opts InlineOptions) *ImageInliner {
	if opts.MaxDimension <= 0 {
		opts.MaxDimension = defaultMaxDimension
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = defaultQuality
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &ImageInliner{
		log:    log,
		drive:  drive,
		client: client,
		opts:   opts,
	}
}

// InlineProducts returns a copy of products with image references inlined.
// A failed image keeps its original reference, except drive:// references
// which are cleared because browsers cannot load them.
func (in *ImageInliner) InlineProducts(ctx context.Context, products []models.Product) ([]models.Product, error) {
	out := make([]models.Product, len(products))
	copy(out, products)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(in.opts.Concurrency)
	for i := range out {
		ref := strings.TrimSpace(out[i].ImageURL)
		if !in.wants(ref) {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i].ImageURL = in.resolve(ctx, out[i].ID, ref)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "inline images")
	}

	return out, nil
}

// InlineRef inlines a single reference such as a business logo
func (in *ImageInliner) InlineRef(ctx context.Context, ref string) string {
	ref = strings.TrimSpace(ref)
	if !in.wants(ref) {
		return ref
	}
	return in.resolve(ctx, "logo", ref)
}

func (in *ImageInliner) wants(ref string) bool {
	switch {
	case ref == "", strings.HasPrefix(ref, "data:"):
		return false
	case strings.HasPrefix(ref, DriveScheme):
		return true
	case strings.HasPrefix(ref, "/"):
		return in.opts.BaseURL != ""
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return in.opts.FetchRemote
	default:
		return false
	}
}

func (in *ImageInliner) resolve(ctx context.Context, owner, ref string) string {
	data, err := in.fetch(ctx, ref)
	if err == nil {
		var uri string
		if uri, err = in.dataURI(data); err == nil {
			metrics.ImagesInlinedTotal.WithLabelValues("ok").Inc()
			return uri
		}
	}

	metrics.ImagesInlinedTotal.WithLabelValues("failed").Inc()
	in.log.Warn("Failed to inline image",
		zap.String("owner", owner),
		zap.String("ref", ref),
		zap.Error(err),
	)
	if strings.HasPrefix(ref, DriveScheme) {
		return ""
	}
	return ref
}

func (in *ImageInliner) fetch(ctx context.Context, ref string) ([]byte, error) {
	if id, ok := strings.CutPrefix(ref, DriveScheme); ok {
		if in.drive == nil {
			return nil, errors.New("drive is not configured")
		}
		return in.drive.DownloadImage(ctx, id)
	}

	url := ref
	if strings.HasPrefix(ref, "/") {
		url = strings.TrimRight(in.opts.BaseURL, "/") + ref
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build image request")
	}
	resp, err := in.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch image")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("image endpoint returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, errors.Wrap(err, "read image data")
	}
	return data, nil
}

func (in *ImageInliner) dataURI(data []byte) (string, error) {
	optimized, mime, err := OptimizeImage(data, in.opts.MaxDimension, in.opts.Quality)
	if err != nil {
		return "", err
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(optimized), nil
}

// OptimizeImage downscales an image so neither side exceeds maxDim. PNG and
// GIF input is re-encoded as PNG to keep transparency, everything else
// (JPEG, WebP) as JPEG.
// Returns the encoded bytes and their MIME type.
func OptimizeImage(data []byte, maxDim, quality int) ([]byte, string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", errors.Wrap(err, "decode image config")
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", errors.Wrap(err, "decode image")
	}

	b := img.Bounds()
	if b.Dx() > maxDim || b.Dy() > maxDim {
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	switch format {
	case "png", "gif":
		if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
			return nil, "", errors.Wrap(err, "encode png")
		}
		return buf.Bytes(), "image/png", nil
	default:
		if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
			return nil, "", errors.Wrap(err, "encode jpeg")
		}
		return buf.Bytes(), "image/jpeg", nil
	}
}
