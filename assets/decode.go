package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

var (
	decodePoolOnce sync.Once
	decodePool     worker.DynamicWorkerPool
)

// getDecodePool returns the pool used to decode images off the main thread.
// Idle workers exit on their own, so the pool is never stopped
func getDecodePool() worker.DynamicWorkerPool {

	decodePoolOnce.Do(func() {
		decodePool = worker.NewDynamicWorkerPool(max(runtime.NumCPU()-1, 1), 64, 1*time.Second)
	})

	return decodePool
}

func decodeImageFile(file string) (image.Image, error) {

	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture '%s': %w", file, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture '%s': %w", file, err)
	}

	return img, nil
}

// DecodeImageFiles decodes all files in parallel. Only CPU work happens here,
// uploading to the GPU must still be done on the thread owning the context.
// Images are returned in the order of files, and every failure is reported
func DecodeImageFiles(files ...string) ([]image.Image, error) {

	imgs := make([]image.Image, len(files))
	errs := make([]error, len(files))

	pool := getDecodePool()

	var wg sync.WaitGroup
	for i := 0; i < len(files); i++ {

		wg.Add(1)
		id := i
		pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				imgs[id], errs[id] = decodeImageFile(files[id])
				return nil, errs[id]
			},
		})
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return imgs, nil
}
