package detect

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandforge/brandforge/internal/model"
)

// fakeClient is a scripted Client for detector tests.
type fakeClient struct {
	response string
	err      error

	mu      sync.Mutex
	calls   int
	prompts []string
}

func (f *fakeClient) Complete(_ context.Context, _, prompt string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var testCandidates = []model.CategoryRecord{
	{Code: "238220", DisplayName: "Plumbing", Group: "Home Services", Popularity: 95},
	{Code: "722511", DisplayName: "Restaurants", Group: "Food & Beverage", Popularity: 92},
}

const plumbingResponse = `CODE: 238220
NAME: Plumbing
GROUP: Home Services
CONFIDENCE: 0.6
KEYWORDS: pipes
REASONING: Mentions fixing pipes.`

func newTestDetector(t *testing.T, client Client) *Detector {
	t.Helper()
	d := NewDetectorWithClient(client, Config{}, nil)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestDetector_DetectCategory(t *testing.T) {
	client := &fakeClient{response: plumbingResponse}
	d := newTestDetector(t, client)

	result, err := d.DetectCategory(context.Background(), "the guy who fixes my pipes", testCandidates)

	require.NoError(t, err)
	assert.Equal(t, "238220", result.Code)
	assert.Equal(t, "Plumbing", result.DisplayName)
	assert.InDelta(t, 0.6, result.Confidence, 1e-9)
	assert.Equal(t, []string{"pipes"}, result.Keywords)
}

func TestDetector_DetectCategory_PromptListsCandidates(t *testing.T) {
	client := &fakeClient{response: plumbingResponse}
	d := newTestDetector(t, client)

	_, err := d.DetectCategory(context.Background(), "fixes pipes", testCandidates)
	require.NoError(t, err)

	require.Len(t, client.prompts, 1)
	prompt := client.prompts[0]
	assert.Contains(t, prompt, "238220 | Plumbing | Home Services")
	assert.Contains(t, prompt, "722511 | Restaurants | Food & Beverage")
	assert.Contains(t, prompt, "fixes pipes")
}

func TestDetector_DetectCategory_CachesByNormalizedText(t *testing.T) {
	client := &fakeClient{response: plumbingResponse}
	d := newTestDetector(t, client)

	first, err := d.DetectCategory(context.Background(), "Fixes My Pipes", testCandidates)
	require.NoError(t, err)

	second, err := d.DetectCategory(context.Background(), "  fixes my pipes ", testCandidates)
	require.NoError(t, err)

	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, 1, client.callCount(), "second lookup must be served from cache")
}

func TestDetector_DetectCategory_RejectsUnknownCode(t *testing.T) {
	client := &fakeClient{response: strings.Replace(plumbingResponse, "238220", "999999", 1)}
	d := newTestDetector(t, client)

	_, err := d.DetectCategory(context.Background(), "fixes pipes", testCandidates)

	require.Error(t, err)
	var detectionErr *DetectionError
	require.True(t, errors.As(err, &detectionErr))
	assert.Contains(t, err.Error(), "999999")
}

func TestDetector_DetectCategory_ClientErrorIsDetectionError(t *testing.T) {
	sentinel := fmt.Errorf("provider unavailable")
	client := &fakeClient{err: sentinel}
	d := newTestDetector(t, client)

	_, err := d.DetectCategory(context.Background(), "fixes pipes", testCandidates)

	require.Error(t, err)
	var detectionErr *DetectionError
	require.True(t, errors.As(err, &detectionErr))
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, client.callCount(), "the detector itself never retries")
}

func TestDetector_DetectCategory_ValidatesInput(t *testing.T) {
	client := &fakeClient{response: plumbingResponse}
	d := newTestDetector(t, client)

	_, err := d.DetectCategory(context.Background(), "   ", testCandidates)
	require.Error(t, err)

	_, err = d.DetectCategory(context.Background(), "fixes pipes", nil)
	require.Error(t, err)

	assert.Equal(t, 0, client.callCount())
}

func TestDetectionCache(t *testing.T) {
	cache := newDetectionCache(0)
	defer cache.Close()

	_, found := cache.get("missing")
	assert.False(t, found)

	cache.set("plumbing", model.DetectionResult{Code: "238220"})
	result, found := cache.get("plumbing")
	require.True(t, found)
	assert.Equal(t, "238220", result.Code)
	assert.Equal(t, 1, cache.size())
}

func TestDetectionCache_Expiry(t *testing.T) {
	cache := newDetectionCache(1)
	defer cache.Close()

	cache.set("plumbing", model.DetectionResult{Code: "238220"})

	_, found := cache.get("plumbing")
	assert.False(t, found, "nanosecond TTL entries must read as expired")
}

func TestRateLimiter_TryAcquire(t *testing.T) {
	rl := newRateLimiter(2)
	defer rl.Close()

	assert.True(t, rl.tryAcquire())
	assert.True(t, rl.tryAcquire())
	assert.False(t, rl.tryAcquire(), "bucket must be empty after capacity draws")
}

func TestRateLimiter_WaitHonorsContext(t *testing.T) {
	rl := newRateLimiter(1)
	defer rl.Close()

	require.True(t, rl.tryAcquire())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := rl.wait(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
