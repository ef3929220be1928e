package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/panjf2000/ants/v2"
)

// Generate writes every asset into dir, creating it if needed. The files
// are rendered in parallel on a bounded worker pool; all failures are
// returned joined together.
func Generate(dir string, logger *log.Logger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("audio: create %s: %w", dir, err)
	}

	var (
		mu   sync.Mutex
		errs []error
		wg   sync.WaitGroup
	)

	pool, err := ants.NewPool(len(AllSounds),
		ants.WithPreAlloc(true),
		ants.WithPanicHandler(func(p any) {
			mu.Lock()
			errs = append(errs, fmt.Errorf("audio: generator panic: %v", p))
			mu.Unlock()
			wg.Done()
		}),
	)
	if err != nil {
		return fmt.Errorf("audio: worker pool: %w", err)
	}
	defer pool.Release()

	for _, s := range AllSounds {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			path := filepath.Join(dir, s.FileName())
			werr := WriteWAV(path, Generator(s))

			mu.Lock()
			if werr != nil {
				errs = append(errs, werr)
			} else {
				logger.Debug("generated sound", "file", path)
			}
			mu.Unlock()
			wg.Done()
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, fmt.Errorf("audio: submit %s: %w", s, submitErr))
			mu.Unlock()
		}
	}

	wg.Wait()
	return errors.Join(errs...)
}

// WriteWAV encodes s as a mono 16-bit WAV at path. The file is written
// under a temporary name and renamed once complete.
func WriteWAV(path string, s beep.Streamer) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".sound-*.wav")
	if err != nil {
		return fmt.Errorf("audio: create %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if err := wav.Encode(tmp, s, Format); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("audio: encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("audio: close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("audio: rename %s: %w", path, err)
	}
	return nil
}
