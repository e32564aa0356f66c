package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/farmlink/backend/internal/middleware"
	"github.com/farmlink/backend/pkg/media"
	"github.com/farmlink/backend/pkg/prometheus"
	"github.com/farmlink/backend/pkg/router"
	"github.com/farmlink/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(cctx *cli.Context) error {
	if err := s.loadConfig(cctx); err != nil {
		return err
	}
	s.loadLogger()
	if err := s.loadDatabase(); err != nil {
		return err
	}
	s.loadRedis()
	s.loadPublisher()
	defer s.close()

	fileCfg := xcontext.Configs(s.ctx).File
	s.loadMedia(media.NewHTTPFetcher(fileCfg.FetchTimeout, fileCfg.MaxSizeBytes()))
	s.loadRepos()
	if err := s.loadDomains(); err != nil {
		return err
	}
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx)
	s.server = &http.Server{
		Addr:    cfg.ApiServer.Address(),
		Handler: s.router.Handler(cfg.ApiServer.AllowedOrigins),
	}

	xcontext.Logger(s.ctx).Infof("Starting server on port: %s", cfg.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	xcontext.Logger(s.ctx).Infof("Server stop")
	return nil
}

// requestOverhead leaves room for the JSON fields around the image data.
const requestOverhead = 64 << 10

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.Before(middleware.WithStartTime())
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())

	router.GET(s.router, "/health", s.healthDomain.Check)

	// Image API. Bodies are capped at the base64 size of the largest image.
	fileCfg := xcontext.Configs(s.ctx).File
	var imageBody int64
	if fileCfg.MaxSize > 0 {
		imageBody = fileCfg.MaxSizeBytes()*4/3 + requestOverhead
	}
	s.router.LimitBody(imageBody)
	router.POST(s.router, "/uploadImage", s.fileDomain.UploadImage)
	router.POST(s.router, "/deleteImage", s.fileDomain.DeleteImage)
	router.GET(s.router, "/getFile", s.fileDomain.GetFile)

	batchRouter := s.router.Branch()
	batchRouter.LimitBody(imageBody * int64(fileCfg.MaxBatch))
	router.POST(batchRouter, "/uploadImages", s.fileDomain.UploadImages)

	s.router.Handle("/metrics", prometheus.NewHandler())
	if s.memStore != nil {
		s.router.Handle("/media/*key", http.StripPrefix("/media", s.memStore))
	}
}
