package session

import (
	"bytes"
	"context"
	"encoding/gob"
	"net/url"
	"time"

	"github.com/PuerkitoBio/purell"
	"github.com/dgraph-io/badger/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const DefaultCacheTTL = time.Hour

var errPageNotCached = badger.ErrKeyNotFound

type cachedPage struct {
	URL         string
	ContentType string
	Contents    []byte

	ExpiresAt int64
}

// pageCache stores successful GET payloads in badger under normalized
// URL keys so that trivially different spellings of the same address
// hit the same entry.
type pageCache struct {
	db  *badger.DB
	ttl time.Duration
}

func openPageCache(dir string, ttl time.Duration) (*pageCache, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &pageCache{db: db, ttl: ttl}, nil
}

func (c *pageCache) close() error {
	return c.db.Close()
}

func cacheKey(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	normalized := purell.NormalizeURL(
		parsed,
		purell.FlagsSafe|
			purell.FlagsUsuallySafeNonGreedy|
			purell.FlagRemoveDirectoryIndex|
			purell.FlagRemoveFragment|
			purell.FlagSortQuery,
	)
	return normalized, nil
}

func (c *pageCache) get(ctx context.Context, rawURL string) (cachedPage, error) {
	ctx, span := tracer.Start(ctx, "cache:get")
	defer span.End()

	key, err := cacheKey(rawURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create cache key")
		return cachedPage{}, err
	}
	span.SetAttributes(attribute.KeyValue{
		Key:   "cache_key",
		Value: attribute.StringValue(key),
	})

	tx := c.db.NewTransaction(false)
	defer tx.Discard()

	item, err := tx.Get([]byte(key))
	if err == badger.ErrKeyNotFound {
		return cachedPage{}, errPageNotCached
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read item from badger")
		return cachedPage{}, err
	}
	serialized, err := item.ValueCopy(nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to copy cached item")
		return cachedPage{}, err
	}

	var cached cachedPage
	err = gob.NewDecoder(bytes.NewBuffer(serialized)).Decode(&cached)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to deserialize cached item")
		return cachedPage{}, err
	}

	if time.Now().Unix() >= cached.ExpiresAt {
		span.AddEvent("delete expired cache key", trace.WithAttributes(attribute.KeyValue{
			Key:   "key",
			Value: attribute.StringValue(key),
		}))

		tx := c.db.NewTransaction(true)
		defer tx.Commit()
		if err := tx.Delete([]byte(key)); err != nil {
			span.RecordError(err)
		}
		return cachedPage{}, errPageNotCached
	}

	return cached, nil
}

func (c *pageCache) set(ctx context.Context, rawURL string, page cachedPage) error {
	ctx, span := tracer.Start(ctx, "cache:set")
	defer span.End()

	key, err := cacheKey(rawURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create cache key")
		return err
	}
	span.SetAttributes(attribute.KeyValue{
		Key:   "cache_key",
		Value: attribute.StringValue(key),
	})

	page.ExpiresAt = time.Now().Add(c.ttl).Unix()

	serialized := bytes.NewBuffer(nil)
	if err := gob.NewEncoder(serialized).Encode(page); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to serialize page")
		return err
	}

	tx := c.db.NewTransaction(true)
	defer tx.Commit()

	if err := tx.Set([]byte(key), serialized.Bytes()); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to set badger item")
		return err
	}
	return nil
}
