// Package delivery runs analyses end to end: load, resolve, compute, report
// and export.
package delivery

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/forest-guardian/agro-report-poc/internal/bands"
	"github.com/forest-guardian/agro-report-poc/internal/cache"
	"github.com/forest-guardian/agro-report-poc/internal/index"
	"github.com/forest-guardian/agro-report-poc/internal/properties"
	"github.com/forest-guardian/agro-report-poc/internal/raster"
	"github.com/forest-guardian/agro-report-poc/internal/report"
	"github.com/gammazero/workerpool"
	"github.com/rotisserie/eris"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

type Analysis struct {
	File   string         `json:"file"`
	Result *index.Result  `json:"result"`
	Report *report.Report `json:"report"`
	Cached bool           `json:"cached"`
}

// BatchResult holds the analyses that succeeded and the error of every file
// that did not.
type BatchResult struct {
	Analyses []*Analysis
	Failures map[string]error
}

// source is a raster to analyse: where it came from, how its cache key is
// built and how it is loaded.
type source struct {
	name string
	key  func(c cache.CacheService[index.Result], params ...interface{}) (string, error)
	load func() (*raster.Raster, error)
}

func fileSource(path string) source {
	return source{
		name: path,
		key: func(c cache.CacheService[index.Result], params ...interface{}) (string, error) {
			return cache.FileKey(c, path, params...)
		},
		load: func() (*raster.Raster, error) { return raster.Load(path) },
	}
}

func bytesSource(name string, data []byte) source {
	return source{
		name: name,
		key: func(c cache.CacheService[index.Result], params ...interface{}) (string, error) {
			return cache.ContentKey(c, data, params...), nil
		},
		load: func() (*raster.Raster, error) { return raster.LoadBytes(data, name) },
	}
}

// AnalyzeFile computes the indices of one raster and builds its report. The
// index summary is taken from opts.Cache when the same content was already
// analysed with the same convention and interpretation table.
func AnalyzeFile(path string, opts Options) (*Analysis, error) {
	return analyze(fileSource(path), opts)
}

// AnalyzeBytes is AnalyzeFile for a raster held in memory; name is only used
// for its extension and in messages.
func AnalyzeBytes(name string, data []byte, opts Options) (*Analysis, error) {
	return analyze(bytesSource(name, data), opts)
}

func analyze(src source, opts Options) (*Analysis, error) {
	engine := opts.engine()
	conv := opts.convention()

	var key string
	if opts.Cache != nil {
		var err error
		key, err = src.key(opts.Cache, conv, engine.Config().Epsilon, engine.Config().Glossary.Fingerprint())
		if err != nil {
			return nil, eris.Wrapf(err, "failed to analyze %s", src.name)
		}
		if cached, ok := opts.Cache.Get(key); ok {
			zap.L().Debug("analysis cache hit", zap.String("path", src.name))
			rep, err := report.Build(&cached, engine, opts.Context)
			if err != nil {
				return nil, eris.Wrapf(err, "failed to build report for %s", src.name)
			}
			return &Analysis{File: src.name, Result: &cached, Report: rep, Cached: true}, nil
		}
	}

	result, err := compute(src, conv, engine)
	if err != nil {
		return nil, err
	}
	if opts.Cache != nil {
		if err := opts.Cache.Set(key, *result); err != nil {
			zap.L().Warn("failed to cache analysis", zap.String("path", src.name), zap.Error(err))
		}
	}

	rep, err := report.Build(result, engine, opts.Context)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to build report for %s", src.name)
	}
	return &Analysis{File: src.name, Result: result, Report: rep}, nil
}

func compute(src source, conv bands.Convention, engine *index.Engine) (*index.Result, error) {
	r, err := src.load()
	if err != nil {
		return nil, eris.Wrapf(err, "failed to load %s", src.name)
	}
	roles, err := bands.ResolveRaster(r, conv)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to resolve bands of %s", src.name)
	}
	result, err := engine.Compute(r, roles)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to compute indices of %s", src.name)
	}

	zap.L().Info("indices computed",
		zap.String("path", src.name),
		zap.String("type", result.Type),
		zap.String("roles", result.Meta.Roles),
		zap.Bool("rescaled", result.Meta.Rescaled),
	)
	return result, nil
}

var imageExtensions = map[string]bool{
	".tif":  true,
	".tiff": true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// ListImages returns the raster images directly under dir, sorted by name.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "error reading images folder %s", dir)
	}
	images := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if imageExtensions[ext] {
			images = append(images, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(images)
	return images, nil
}

// AnalyzeDirectory analyses every image of dir on a pool of
// properties.Workers() workers. It fails only when dir has no images or
// every image failed.
func AnalyzeDirectory(dir string, opts Options) (*BatchResult, error) {
	images, err := ListImages(dir)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, eris.Errorf("no images found in %s", dir)
	}

	batch := &BatchResult{Failures: map[string]error{}}
	var mu sync.Mutex
	progressBar := progressbar.Default(int64(len(images)), "Analyzing images")
	wp := workerpool.New(properties.Workers())
	for _, image := range images {
		wp.Submit(func() {
			analysis, err := AnalyzeFile(image, opts)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				zap.L().Warn("image analysis failed", zap.String("path", image), zap.Error(err))
				batch.Failures[image] = err
			} else {
				batch.Analyses = append(batch.Analyses, analysis)
			}
			progressBar.Add(1)
		})
	}
	wp.StopWait()
	progressBar.Finish()

	sort.Slice(batch.Analyses, func(i, j int) bool {
		return batch.Analyses[i].File < batch.Analyses[j].File
	})
	if len(batch.Analyses) == 0 {
		return batch, eris.Errorf("all %d images failed during analysis", len(images))
	}
	return batch, nil
}
