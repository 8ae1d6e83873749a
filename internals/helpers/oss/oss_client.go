package helper

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

/* =======================================================================
   OSS service (Aliyun)
======================================================================= */

type OSSService struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string // optional: "uploads/"
}

func NewOSSServiceFromEnv(prefix string) (*OSSService, error) {
	endpoint := getEnv("ALI_OSS_ENDPOINT")
	ak := getEnv("ALI_OSS_ACCESS_KEY")
	sk := getEnv("ALI_OSS_SECRET_KEY")
	bucketName := getEnv("ALI_OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	client, err := oss.New(endpoint, ak, sk)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	return &OSSService{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		Prefix:     strings.Trim(prefix, "/"),
	}, nil
}

func (s *OSSService) buildObjectKey(dir, filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	name := fmt.Sprintf("%s-%s%s", slugifyName(base), randHex(6), strings.ToLower(filepath.Ext(filename)))
	parts := []string{}
	if s.Prefix != "" {
		parts = append(parts, s.Prefix)
	}
	if dir = strings.Trim(dir, "/"); dir != "" {
		parts = append(parts, dir)
	}
	parts = append(parts, name)
	return path.Join(parts...)
}

func (s *OSSService) PublicURL(key string) string {
	// virtual-hosted style: https://<bucket>.<endpoint>/<key>
	ep := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, ep, key)
}

// ExtractKeyFromPublicURL reverses PublicURL so objects can be deleted by URL.
func (s *OSSService) ExtractKeyFromPublicURL(publicURL string) (string, error) {
	u, err := url.Parse(publicURL)
	if err != nil {
		return "", err
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", fmt.Errorf("no object key in url: %s", publicURL)
	}
	return key, nil
}

/* =======================================================================
   Uploads
======================================================================= */

// UploadStream puts a reader under key with the given content type.
func (s *OSSService) UploadStream(key string, r io.Reader, contentType string) error {
	opts := []oss.Option{
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	return s.Bucket.PutObject(key, r, opts...)
}

// UploadFromFormFile uploads a multipart file as-is (video blobs etc.);
// returns (publicURL, objectKey).
func (s *OSSService) UploadFromFormFile(dir string, fh *multipart.FileHeader) (string, string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	contentType, rd, err := detectContentType(src, fh.Filename)
	if err != nil {
		return "", "", err
	}

	key := s.buildObjectKey(dir, fh.Filename)
	if err := s.UploadStream(key, rd, contentType); err != nil {
		return "", "", err
	}
	return s.PublicURL(key), key, nil
}

// UploadAsWebP re-encodes an image upload (jpeg/png/webp) to WebP,
// downscaled to maxW/maxH keeping aspect, and uploads it.
func (s *OSSService) UploadAsWebP(dir string, fh *multipart.FileHeader, maxW, maxH int, quality float32) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	all, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}
	img, err := decodeImage(all)
	if err != nil {
		return "", err
	}
	img = downscaleIfNeeded(img, maxW, maxH)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: quality}); err != nil {
		return "", fmt.Errorf("webp encode: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(fh.Filename), filepath.Ext(fh.Filename))
	key := s.buildObjectKey(dir, base+".webp")
	if err := s.UploadStream(key, &buf, "image/webp"); err != nil {
		return "", err
	}
	return s.PublicURL(key), nil
}

// UploadAsWebPWatermarked composes mark onto the upload at the given anchor
// before the WebP re-encode. Used for image slots when the owner's watermark
// group is complete.
func (s *OSSService) UploadAsWebPWatermarked(dir string, fh, mark *multipart.FileHeader, position string, maxW, maxH int, quality float32) (string, error) {
	img, err := decodeFormImage(fh)
	if err != nil {
		return "", err
	}
	markImg, err := decodeFormImage(mark)
	if err != nil {
		return "", err
	}

	img = downscaleIfNeeded(img, maxW, maxH)
	img, err = ApplyWatermark(img, markImg, position, 1)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: quality}); err != nil {
		return "", fmt.Errorf("webp encode: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(fh.Filename), filepath.Ext(fh.Filename))
	key := s.buildObjectKey(dir, base+".webp")
	if err := s.UploadStream(key, &buf, "image/webp"); err != nil {
		return "", err
	}
	return s.PublicURL(key), nil
}

func decodeFormImage(fh *multipart.FileHeader) (image.Image, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	all, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return decodeImage(all)
}

func (s *OSSService) DeleteByPublicURL(publicURL string) error {
	key, err := s.ExtractKeyFromPublicURL(publicURL)
	if err != nil {
		return err
	}
	if err := s.Bucket.DeleteObject(key); err != nil {
		log.Printf("[OSS] delete %s failed: %v", key, err)
		return err
	}
	return nil
}

/* =======================================================================
   Image plumbing
======================================================================= */

func decodeImage(all []byte) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty image payload")
	}
	if http.DetectContentType(all) == "image/webp" {
		return webp.Decode(bytes.NewReader(all))
	}
	img, _, err := image.Decode(bytes.NewReader(all))
	return img, err
}

func downscaleIfNeeded(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if (maxW <= 0 || w <= maxW) && (maxH <= 0 || h <= maxH) {
		return src
	}
	scaleW := float64(maxW) / float64(w)
	scaleH := float64(maxH) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func detectContentType(src multipart.File, filename string) (string, io.Reader, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", nil, err
	}
	head = head[:n]
	ct := http.DetectContentType(head)
	if ct == "application/octet-stream" {
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".webm":
			ct = "video/webm"
		case ".mp4":
			ct = "video/mp4"
		case ".webp":
			ct = "image/webp"
		}
	}
	return ct, io.MultiReader(bytes.NewReader(head), src), nil
}

func slugifyName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		out = fmt.Sprintf("file-%d", time.Now().Unix())
	}
	return out
}

func randHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
