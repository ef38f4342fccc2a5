package resolver_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/combiner/internal/adapters/cache"
	"go.trai.ch/combiner/internal/adapters/source"
	"go.trai.ch/combiner/internal/adapters/telemetry"
	"go.trai.ch/combiner/internal/core/domain"
	"go.trai.ch/combiner/internal/core/ports"
	"go.trai.ch/combiner/internal/core/ports/mocks"
	"go.trai.ch/combiner/internal/engine/resolver"
	"go.trai.ch/combiner/internal/engine/scanner"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	src      *source.Memory
	cache    *cache.Memory
	logger   *mocks.MockLogger
	resolver *resolver.Resolver
}

func newFixture(t *testing.T, files map[string]string) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	src := source.NewMemory()
	for p, body := range files {
		require.NoError(t, src.Set(domain.Script, p, body))
	}
	c, err := cache.NewMemory(64)
	require.NoError(t, err)

	return &fixture{
		src:    src,
		cache:  c,
		logger: logger,
		resolver: resolver.New(src, c, scanner.New(logger), telemetry.NewNoOpTracer(), logger,
			resolver.Options{Concurrency: 4, FetchTimeout: time.Second}),
	}
}

func keys(paths ...string) []domain.CacheKey {
	out := make([]domain.CacheKey, len(paths))
	for i, p := range paths {
		out[i] = domain.CacheKey(p)
	}
	return out
}

func TestResolve_NoRequirementsKeepsInputOrder(t *testing.T) {
	t.Parallel()
	f := newFixture(t, map[string]string{
		"c.js": "c", "a.js": "a", "b.js": "b",
	})

	res, err := f.resolver.Resolve(t.Context(), domain.Script, []string{"c.js", "a.js", "b.js"}, resolver.Policy{})
	require.NoError(t, err)
	assert.Equal(t, keys("c.js", "a.js", "b.js"), res.Order)
	assert.Empty(t, res.Failed)
	assert.Empty(t, res.Cycles)
}

func TestResolve_ChainIsDependencyFirst(t *testing.T) {
	t.Parallel()
	f := newFixture(t, map[string]string{
		"a.js": `/* @require ["b.js"] */ a`,
		"b.js": `/* @require ["c.js"] */ b`,
		"c.js": "c",
	})

	res, err := f.resolver.Resolve(t.Context(), domain.Script, []string{"a.js"}, resolver.Policy{})
	require.NoError(t, err)
	assert.Equal(t, keys("c.js", "b.js", "a.js"), res.Order)
	assert.Equal(t, keys("a.js"), res.Entries)
	assert.Equal(t, []string{"b.js"}, res.Payloads["a.js"].Requires)
}

func TestResolve_DeclarationOrderIsPreserved(t *testing.T) {
	t.Parallel()
	f := newFixture(t, map[string]string{
		"app.js":  `// @require ["z.js", "m.js", "a.js"]`,
		"z.js":    "z",
		"m.js":    "m",
		"a.js":    "a",
		"lib.js":  "lib",
		"main.js": `// @require ["lib.js"]`,
	})

	for range 10 {
		res, err := f.resolver.Resolve(t.Context(), domain.Script, []string{"app.js", "main.js"}, resolver.Policy{})
		require.NoError(t, err)
		assert.Equal(t, keys("z.js", "m.js", "a.js", "app.js", "lib.js", "main.js"), res.Order)
		f.cache.Purge()
	}
}

func TestResolve_SharedDependencyFetchedOnce(t *testing.T) {
	t.Parallel()
	f := newFixture(t, map[string]string{
		"x.js": `// @require ["z.js"]`,
		"y.js": `// @require ["z.js"]`,
		"z.js": "z",
	})

	res, err := f.resolver.Resolve(t.Context(), domain.Script, []string{"x.js", "y.js"}, resolver.Policy{})
	require.NoError(t, err)
	assert.Equal(t, keys("z.js", "x.js", "y.js"), res.Order)
	assert.Equal(t, 1, f.src.Fetches(domain.Script, "z.js"))
}

func TestResolve_SecondResolutionUsesCache(t *testing.T) {
	t.Parallel()
	f := newFixture(t, map[string]string{
		"a.js": `// @require ["b.js"]`,
		"b.js": "b",
	})

	first, err := f.resolver.Resolve(t.Context(), domain.Script, []string{"a.js"}, resolver.Policy{})
	require.NoError(t, err)
	second, err := f.resolver.Resolve(t.Context(), domain.Script, []string{"a.js"}, resolver.Policy{})
	require.NoError(t, err)

	assert.Equal(t, first.Order, second.Order)
	assert.Same(t, first.Payloads["b.js"], second.Payloads["b.js"])
	assert.Equal(t, 1, f.src.Fetches(domain.Script, "a.js"))
	assert.Equal(t, 1, f.src.Fetches(domain.Script, "b.js"))
}

func TestResolve_CyclesTerminate(t *testing.T) {
	t.Parallel()
	f := newFixture(t, map[string]string{
		"self.js": `// @require ["self.js"]`,
		"a.js":    `// @require ["b.js"]`,
		"b.js":    `// @require ["c.js"]`,
		"c.js":    `// @require ["a.js"]`,
	})

	res, err := f.resolver.Resolve(t.Context(), domain.Script, []string{"self.js"}, resolver.Policy{})
	require.NoError(t, err)
	assert.Equal(t, keys("self.js"), res.Order)
	assert.Equal(t, []domain.Edge{{From: "self.js", To: "self.js"}}, res.Cycles)

	res, err = f.resolver.Resolve(t.Context(), domain.Script, []string{"a.js"}, resolver.Policy{})
	require.NoError(t, err)
	assert.Equal(t, keys("c.js", "b.js", "a.js"), res.Order)
	assert.Equal(t, []domain.Edge{{From: "c.js", To: "a.js"}}, res.Cycles)
}

func TestResolve_RequirementsAreFileRelative(t *testing.T) {
	t.Parallel()
	f := newFixture(t, map[string]string{
		"pages/index.js": `/* @require ["../util.js", "/vendor/x.js", "local.js"] */`,
		"pages/local.js": "local",
		"util.js":        "util",
		"vendor/x.js":    "x",
	})

	res, err := f.resolver.Resolve(t.Context(), domain.Script, []string{"pages/index.js"}, resolver.Policy{})
	require.NoError(t, err)
	assert.Equal(t, keys("util.js", "vendor/x.js", "pages/local.js", "pages/index.js"), res.Order)
}

func TestResolve_DuplicateEntriesAndEquivalentPaths(t *testing.T) {
	t.Parallel()
	f := newFixture(t, map[string]string{
		"lib/a.js": "a",
	})

	res, err := f.resolver.Resolve(t.Context(), domain.Script,
		[]string{"lib/a.js", "/lib/a.js", "lib/x/../a.js"}, resolver.Policy{})
	require.NoError(t, err)
	assert.Equal(t, keys("lib/a.js"), res.Order)
}

func TestResolve_LenientRecordsFailures(t *testing.T) {
	t.Parallel()
	f := newFixture(t, map[string]string{
		"a.js": `// @require ["missing.js", "b.js"]`,
		"b.js": "b",
	})

	res, err := f.resolver.Resolve(t.Context(), domain.Script, []string{"a.js", "gone.js"}, resolver.Policy{})
	require.NoError(t, err)
	assert.Equal(t, keys("missing.js", "b.js", "a.js", "gone.js"), res.Order)
	assert.Equal(t, keys("missing.js", "gone.js"), res.Failed)
	require.ErrorIs(t, res.Payloads["missing.js"].Err, domain.ErrFetchFailed)
	assert.Empty(t, res.Body("missing.js"))

	// Failures are not cached.
	_, err = f.resolver.Resolve(t.Context(), domain.Script, []string{"a.js"}, resolver.Policy{})
	require.NoError(t, err)
	assert.Equal(t, 2, f.src.Fetches(domain.Script, "missing.js"))
}

func TestResolve_StrictFailsWithPath(t *testing.T) {
	t.Parallel()
	f := newFixture(t, map[string]string{
		"a.js": `// @require ["b.js"]`,
		"b.js": `// @require ["missing.js"]`,
	})

	_, err := f.resolver.Resolve(t.Context(), domain.Script, []string{"a.js"}, resolver.Policy{Strict: true})
	require.ErrorIs(t, err, domain.ErrFetchFailed)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "missing.js", zErr.Metadata()["path"])
}

func TestResolve_StrictRejectsEscapingEntry(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)

	_, err := f.resolver.Resolve(t.Context(), domain.Script, []string{"../etc/passwd"}, resolver.Policy{Strict: true})
	require.ErrorIs(t, err, domain.ErrPathOutsideRoot)

	res, err := f.resolver.Resolve(t.Context(), domain.Script, []string{"../etc/passwd"}, resolver.Policy{})
	require.NoError(t, err)
	assert.Empty(t, res.Order)
}

func TestResolve_NoEntries(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)

	_, err := f.resolver.Resolve(t.Context(), domain.Script, nil, resolver.Policy{})
	require.ErrorIs(t, err, domain.ErrNoEntries)
}

func TestResolve_LogToggle(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	src := source.NewMemory()
	require.NoError(t, src.Set(domain.Script, "a.js", `// @require ["b.js"]`))
	require.NoError(t, src.Set(domain.Script, "b.js", "b"))
	c, err := cache.NewMemory(8)
	require.NoError(t, err)

	var lines []string
	logger.EXPECT().Info(gomock.Any()).Do(func(msg string) { lines = append(lines, msg) }).AnyTimes()

	r := resolver.New(src, c, scanner.New(logger), telemetry.NewNoOpTracer(), logger,
		resolver.Options{Concurrency: 1, Log: true})
	_, err = r.Resolve(t.Context(), domain.Script, []string{"a.js"}, resolver.Policy{})
	require.NoError(t, err)
	_, err = r.Resolve(t.Context(), domain.Script, []string{"a.js"}, resolver.Policy{})
	require.NoError(t, err)

	assert.Contains(t, lines, "GOT a.js")
	assert.Contains(t, lines, "REQS a.js [b.js]")
	assert.Contains(t, lines, "GOT b.js")
	assert.Contains(t, lines, "CACHED a.js")
	assert.Contains(t, lines, "CACHED b.js")
}

// slowSource blocks every fetch until its context ends.
type slowSource struct {
	started atomic.Int32
}

func (s *slowSource) Fetch(ctx context.Context, _ domain.AssetType, _ domain.CacheKey) (string, error) {
	s.started.Add(1)
	<-ctx.Done()
	return "", ctx.Err()
}

func TestResolve_CancellationPropagates(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		logger := mocks.NewMockLogger(ctrl)
		src := &slowSource{}
		c, err := cache.NewMemory(8)
		require.NoError(t, err)
		r := resolver.New(src, c, scanner.New(logger), telemetry.NewNoOpTracer(), logger,
			resolver.Options{Concurrency: 4, FetchTimeout: time.Hour})

		ctx, cancel := context.WithCancel(t.Context())
		done := make(chan error, 1)
		go func() {
			_, err := r.Resolve(ctx, domain.Script, []string{"a.js", "b.js"}, resolver.Policy{})
			done <- err
		}()
		synctest.Wait()
		assert.Equal(t, int32(2), src.started.Load())

		cancel()
		require.ErrorIs(t, <-done, context.Canceled)
	})
}

func TestResolve_FetchTimeoutIsAFailure(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		logger := mocks.NewMockLogger(ctrl)
		logger.EXPECT().Warn(gomock.Any()).Times(1)
		c, err := cache.NewMemory(8)
		require.NoError(t, err)
		r := resolver.New(&slowSource{}, c, scanner.New(logger), telemetry.NewNoOpTracer(), logger,
			resolver.Options{Concurrency: 1, FetchTimeout: time.Second})

		res, err := r.Resolve(t.Context(), domain.Script, []string{"a.js"}, resolver.Policy{})
		require.NoError(t, err)
		assert.Equal(t, keys("a.js"), res.Failed)
		assert.True(t, errors.Is(res.Payloads["a.js"].Err, context.DeadlineExceeded))
	})
}

func TestResolve_ConcurrencyIsBounded(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		logger := mocks.NewMockLogger(ctrl)
		src := &slowSource{}
		c, err := cache.NewMemory(8)
		require.NoError(t, err)
		r := resolver.New(src, c, scanner.New(logger), telemetry.NewNoOpTracer(), logger,
			resolver.Options{Concurrency: 2, FetchTimeout: time.Hour})

		ctx, cancel := context.WithCancel(t.Context())
		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = r.Resolve(ctx, domain.Script, []string{"a.js", "b.js", "c.js", "d.js"}, resolver.Policy{})
		}()
		synctest.Wait()
		assert.Equal(t, int32(2), src.started.Load())

		cancel()
		<-done
	})
}

func TestResolve_SourceErrorIsTracedAndRecorded(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	src := mocks.NewMockContentSource(ctrl)
	tracer := mocks.NewMockTracer(ctrl)
	resolveSpan := mocks.NewMockSpan(ctrl)
	fetchSpan := mocks.NewMockSpan(ctrl)
	c, err := cache.NewMemory(8)
	require.NoError(t, err)

	errReset := errors.New("connection reset by peer")
	src.EXPECT().Fetch(gomock.Any(), domain.Script, domain.CacheKey("remote.js")).Return("", errReset)
	logger.EXPECT().Warn(gomock.Any()).Times(1)

	startWith := func(span ports.Span) func(context.Context, string) (context.Context, ports.Span) {
		return func(ctx context.Context, _ string) (context.Context, ports.Span) {
			return ctx, span
		}
	}
	tracer.EXPECT().Start(gomock.Any(), "resolve").DoAndReturn(startWith(resolveSpan))
	tracer.EXPECT().Start(gomock.Any(), "fetch").DoAndReturn(startWith(fetchSpan))
	resolveSpan.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	resolveSpan.EXPECT().End()
	fetchSpan.EXPECT().SetAttribute("path", "remote.js")
	fetchSpan.EXPECT().RecordError(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrFetchFailed)
		assert.ErrorIs(t, err, errReset)
	})
	fetchSpan.EXPECT().End()

	r := resolver.New(src, c, scanner.New(logger), tracer, logger, resolver.Options{Concurrency: 1})
	res, err := r.Resolve(t.Context(), domain.Script, []string{"remote.js"}, resolver.Policy{})
	require.NoError(t, err)

	assert.Equal(t, keys("remote.js"), res.Failed)
	require.ErrorIs(t, res.Payloads["remote.js"].Err, errReset)
	assert.Equal(t, 0, c.Len(), "failed fetches are not cached")
}
