package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("could not start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return NewCache(mr.Addr(), ""), mr
}

func TestGetDownloadURL_Miss(t *testing.T) {
	c, _ := newTestCache(t)

	url, err := c.GetDownloadURL(context.Background(), "owner/1-abc.jpg")
	if err != nil {
		t.Fatalf("expected a miss to be silent, got %v", err)
	}
	if url != "" {
		t.Errorf("expected empty URL on miss, got %q", url)
	}
}

func TestSetThenGetDownloadURL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.SetDownloadURL(ctx, "owner/1-abc.jpg", "https://example.com/signed", time.Now().Add(time.Hour))

	url, err := c.GetDownloadURL(ctx, "owner/1-abc.jpg")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if url != "https://example.com/signed" {
		t.Errorf("expected the cached URL, got %q", url)
	}
	if !mr.Exists("media:url:owner/1-abc.jpg") {
		t.Error("expected the entry under the media:url: prefix")
	}
}

func TestSetDownloadURL_ExpiredValidityIsSkipped(t *testing.T) {
	c, mr := newTestCache(t)

	c.SetDownloadURL(context.Background(), "owner/1-abc.jpg", "https://example.com/signed", time.Now().Add(-time.Minute))

	if mr.Exists("media:url:owner/1-abc.jpg") {
		t.Error("expected nothing cached for an already-expired URL")
	}
}

func TestGetDownloadURL_EntryExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.SetDownloadURL(ctx, "owner/1-abc.jpg", "https://example.com/signed", time.Now().Add(time.Second))
	mr.FastForward(2 * time.Second)

	url, err := c.GetDownloadURL(ctx, "owner/1-abc.jpg")
	if err != nil {
		t.Fatalf("expected a miss after expiry, got %v", err)
	}
	if url != "" {
		t.Errorf("expected empty URL after expiry, got %q", url)
	}
}

func TestDeleteDownloadURL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.SetDownloadURL(ctx, "owner/1-abc.jpg", "https://example.com/signed", time.Now().Add(time.Hour))
	if err := c.DeleteDownloadURL(ctx, "owner/1-abc.jpg"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if mr.Exists("media:url:owner/1-abc.jpg") {
		t.Error("expected the entry deleted")
	}
}

func TestNoopCache(t *testing.T) {
	n := NewNoop()
	ctx := context.Background()

	n.SetDownloadURL(ctx, "k", "v", time.Now().Add(time.Hour))
	url, err := n.GetDownloadURL(ctx, "k")
	if err != nil || url != "" {
		t.Errorf("expected the noop cache to always miss, got %q, %v", url, err)
	}
	if err := n.DeleteDownloadURL(ctx, "k"); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}
