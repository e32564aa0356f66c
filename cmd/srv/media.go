package main

import (
	"encoding/json"
	"errors"

	"github.com/farmlink/backend/pkg/media"
	"github.com/farmlink/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) loadMediaCommand(cctx *cli.Context) error {
	if err := s.loadConfig(cctx); err != nil {
		return err
	}
	s.loadLogger()
	s.loadRedis()
	s.loadPublisher()

	fileCfg := xcontext.Configs(s.ctx).File
	s.loadMedia(media.NewLocalFetcher(fileCfg.FetchTimeout, fileCfg.MaxSizeBytes()))
	return nil
}

func (s *srv) startUpload(cctx *cli.Context) error {
	if err := s.loadMediaCommand(cctx); err != nil {
		return err
	}
	defer s.close()

	args := cctx.Args().Slice()
	if len(args) == 0 {
		return errors.New("require at least one source")
	}

	bucket, folder, prefix := cctx.String("bucket"), cctx.String("folder"), cctx.String("prefix")

	var results []*media.UploadResult
	if len(args) == 1 {
		src, mime := media.ParseSource(args[0]), cctx.String("mime")
		path := media.GeneratePath(folder, prefix, media.ExtensionFor(src, mime))
		result, err := s.mediaClient.UploadImage(s.ctx, src, bucket, path, mime)
		if err != nil {
			return err
		}
		results = append(results, result)
	} else {
		srcs := make([]media.Source, 0, len(args))
		for _, arg := range args {
			srcs = append(srcs, media.ParseSource(arg))
		}

		var err error
		results, err = s.mediaClient.UploadImages(s.ctx, srcs, bucket, folder, prefix)
		if err != nil {
			return err
		}
	}

	encoder := json.NewEncoder(cctx.App.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

func (s *srv) startDelete(cctx *cli.Context) error {
	if err := s.loadMediaCommand(cctx); err != nil {
		return err
	}
	defer s.close()

	if cctx.NArg() == 0 {
		return errors.New("require at least one key")
	}

	for _, key := range cctx.Args().Slice() {
		s.mediaClient.DeleteImage(s.ctx, cctx.String("bucket"), key)
	}
	return nil
}

func (s *srv) startSweep(cctx *cli.Context) error {
	if err := s.loadMediaCommand(cctx); err != nil {
		return err
	}
	defer s.close()

	if s.orphanRepo == nil {
		return errors.New("sweep requires redis")
	}

	n, err := s.mediaClient.SweepOrphans(s.ctx)
	if err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Removed %d orphaned object(s)", n)
	return nil
}
