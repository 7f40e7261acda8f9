package app

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/corey/hobis/internal/adapters/document"
	fsw "github.com/corey/hobis/internal/adapters/fsnotify"
	"github.com/corey/hobis/internal/domain/isotope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource returns whatever datasets/err it currently holds.
type stubSource struct {
	mu  sync.Mutex
	ds  []isotope.Dataset
	err error
}

func (s *stubSource) set(ds []isotope.Dataset, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ds, s.err = ds, err
}

func (s *stubSource) Load() ([]isotope.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds, s.err
}

func (s *stubSource) Describe() string { return "stub" }

// manualWatcher lets a test fire change notifications directly.
type manualWatcher struct {
	onChange func(string)
	path     string
	stopped  int
}

func (w *manualWatcher) Watch(path string, onChange func(string)) error {
	w.path, w.onChange = path, onChange
	return nil
}

func (w *manualWatcher) Stop() error {
	w.stopped++
	return nil
}

func withGamma(gamma float64) []isotope.Dataset {
	ds := isotope.BuiltinDatasets()
	ds[0].Records[3].Gamma = gamma // QSA Co-60
	return ds
}

func TestNewCatalog_Builtin(t *testing.T) {
	var logs bytes.Buffer
	c, err := NewCatalog(Config{Logger: log.New(&logs, "", 0)})
	require.NoError(t, err)

	assert.Equal(t, uint64(1), c.Revision())
	assert.Equal(t, "builtin", c.Source())
	assert.Equal(t, []string{isotope.QSA, isotope.ICRP107}, c.Table().Datasets())
	assert.Contains(t, logs.String(), "revision 1: 2 dataset(s), 18 record(s) from builtin")

	assert.ErrorIs(t, c.Watch(&manualWatcher{}), ErrNotWatchable)
}

func TestNewCatalog_FailsFastOnInvalidData(t *testing.T) {
	src := &stubSource{}
	src.set(withGamma(0), nil)

	c, err := NewCatalog(Config{Source: src})
	assert.Nil(t, c)
	require.ErrorIs(t, err, isotope.ErrValidation)

	var ve *isotope.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Co-60", ve.Violations[0].Isotope)
}

func TestNewCatalog_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reference.json")
	writeDoc(t, path, isotope.BuiltinDatasets(), document.FormatJSON)

	c, err := NewCatalog(Config{DataPath: path})
	require.NoError(t, err)
	assert.Equal(t, path, c.Source())

	mm, err := c.Table().HVL(isotope.ICRP107, "Co-60", isotope.Lead)
	require.NoError(t, err)
	assert.Equal(t, 15.6, mm)
}

func TestNewCatalog_MissingFile(t *testing.T) {
	_, err := NewCatalog(Config{DataPath: filepath.Join(t.TempDir(), "absent.yaml")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReload_SwapsWholeTable(t *testing.T) {
	src := &stubSource{}
	src.set(withGamma(13.0), nil)
	c, err := NewCatalog(Config{Source: src})
	require.NoError(t, err)

	before := c.Table()
	src.set(withGamma(13.5), nil)
	require.NoError(t, c.Reload())

	after := c.Table()
	assert.NotSame(t, before, after)
	assert.Equal(t, uint64(2), c.Revision())

	old, err := before.Record(isotope.QSA, "Co-60")
	require.NoError(t, err)
	assert.Equal(t, 13.0, old.Gamma, "held tables are never mutated")

	cur, err := after.Record(isotope.QSA, "Co-60")
	require.NoError(t, err)
	assert.Equal(t, 13.5, cur.Gamma)
}

func TestReload_KeepsTableOnFailure(t *testing.T) {
	var logs bytes.Buffer
	src := &stubSource{}
	src.set(withGamma(13.0), nil)
	c, err := NewCatalog(Config{Source: src, Logger: log.New(&logs, "", 0)})
	require.NoError(t, err)
	before := c.Table()

	src.set(withGamma(-1), nil)
	err = c.Reload()
	assert.ErrorIs(t, err, isotope.ErrValidation)
	assert.Same(t, before, c.Table())
	assert.Equal(t, uint64(1), c.Revision())

	src.set(nil, errors.New("disk on fire"))
	assert.Error(t, c.Reload())
	assert.Same(t, before, c.Table())

	assert.Contains(t, logs.String(), "reload rejected, keeping revision 1")
}

func TestWatch_ReloadsOnChange(t *testing.T) {
	src := &stubSource{}
	src.set(withGamma(13.0), nil)
	c, err := NewCatalog(Config{DataPath: "/data/reference.yaml", Source: src})
	require.NoError(t, err)

	w := &manualWatcher{}
	require.NoError(t, c.Watch(w))
	assert.Equal(t, "/data/reference.yaml", w.path)
	assert.Error(t, c.Watch(&manualWatcher{}), "second watch is refused")

	src.set(withGamma(14.0), nil)
	w.onChange(w.path)

	r, err := c.Table().Record(isotope.QSA, "Co-60")
	require.NoError(t, err)
	assert.Equal(t, 14.0, r.Gamma)

	require.NoError(t, c.Stop())
	require.NoError(t, c.Stop())
	assert.Equal(t, 1, w.stopped)
}

func TestCatalog_ConcurrentReadersDuringReload(t *testing.T) {
	src := &stubSource{}
	src.set(withGamma(13.0), nil)
	c, err := NewCatalog(Config{Source: src})
	require.NoError(t, err)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	bad := make(chan float64, 1)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				tbl := c.Table()
				r, err := tbl.Record(isotope.QSA, "Co-60")
				if err != nil || (r.Gamma != 13.0 && r.Gamma != 20.0) {
					select {
					case bad <- r.Gamma:
					default:
					}
					return
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		g := 13.0
		if i%2 == 0 {
			g = 20.0
		}
		src.set(withGamma(g), nil)
		require.NoError(t, c.Reload())
	}
	close(stop)
	wg.Wait()

	select {
	case g := <-bad:
		t.Fatalf("reader saw torn or missing record (gamma %v)", g)
	default:
	}
	assert.Equal(t, uint64(51), c.Revision())
}

func TestWatch_FileIntegration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reference.yaml")
	writeDoc(t, path, withGamma(13.0), document.FormatYAML)

	c, err := NewCatalog(Config{DataPath: path})
	require.NoError(t, err)

	w, err := fsw.NewWatcher(20 * time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, c.Watch(w))
	defer c.Stop()
	time.Sleep(50 * time.Millisecond)

	writeDoc(t, path, withGamma(13.25), document.FormatYAML)

	require.Eventually(t, func() bool {
		r, err := c.Table().Record(isotope.QSA, "Co-60")
		return err == nil && r.Gamma == 13.25
	}, 2*time.Second, 20*time.Millisecond)
	assert.GreaterOrEqual(t, c.Revision(), uint64(2))
}

func writeDoc(t *testing.T, path string, ds []isotope.Dataset, f document.Format) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, document.Encode(&buf, ds, f))
	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, buf.Bytes(), 0644))
	require.NoError(t, os.Rename(tmp, path))
}
