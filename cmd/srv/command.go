package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "media"
	s.app.Usage = "Image storage gateway"
	s.app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "path to a TOML config file",
			EnvVars: []string{"CONFIG_FILE"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "debug, info, warn, error or silence",
			EnvVars: []string{"LOG_LEVEL"},
		},
	}

	uploadFlags := []cli.Flag{
		bucketFlag(),
		&cli.StringFlag{Name: "folder", Usage: "key folder"},
		&cli.StringFlag{Name: "prefix", Usage: "key prefix, usually the owning entity id"},
		&cli.StringFlag{Name: "mime", Usage: "content type of a single image"},
	}

	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Serves the upload, delete and file lookup apis with health and metrics.`,
		},
		{
			Action:      s.startUpload,
			Name:        "upload",
			Usage:       "Upload images",
			ArgsUsage:   "<source...>",
			Flags:       uploadFlags,
			Category:    "Media",
			Description: `Uploads data URIs, base64 strings, http(s) URLs or file:// paths. More than one source is uploaded as a batch.`,
		},
		{
			Action:      s.startDelete,
			Name:        "delete",
			Usage:       "Delete objects",
			ArgsUsage:   "<key...>",
			Flags:       []cli.Flag{bucketFlag()},
			Category:    "Media",
			Description: `Removes objects by key. Failures are logged, never returned.`,
		},
		{
			Action:      s.startSweep,
			Name:        "sweep",
			Usage:       "Remove orphaned objects",
			Category:    "Media",
			Description: `Removes objects left behind by failed batch uploads, as recorded in redis.`,
		},
	}
}

func bucketFlag() cli.Flag {
	return &cli.StringFlag{Name: "bucket", Usage: "target bucket", Required: true}
}
