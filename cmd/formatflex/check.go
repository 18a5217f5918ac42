package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ExploreAritra/format-flex/internal/caps"
	"github.com/ExploreAritra/format-flex/internal/check"
	"github.com/ExploreAritra/format-flex/internal/config"
	"github.com/ExploreAritra/format-flex/internal/logging"
)

// newCheckCmd builds the self-test subcommand: tool versions plus tiny
// lavfi test encodes through the configured encoders.
func newCheckCmd() *cobra.Command {
	var ffmpegPath, ffprobePath, color string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run engine self-tests (tool presence, test encodes)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := config.Default()
			opts.ColorMode = config.ColorMode(color)
			if ffmpegPath != "" {
				opts.FFmpegPath = ffmpegPath
			}
			if ffprobePath != "" {
				opts.FFprobePath = ffprobePath
			}

			log, err := logging.NewLogger(&opts)
			if err != nil {
				return err
			}
			defer log.Close()

			check.RunCheck(cmd.Context(), &opts, log)
			return nil
		},
	}
	cmd.Flags().StringVar(&ffmpegPath, "ffmpeg", "", "path to the ffmpeg binary")
	cmd.Flags().StringVar(&ffprobePath, "ffprobe", "", "path to the ffprobe binary")
	cmd.Flags().StringVar(&color, "color", "auto", "color output: auto, always, never")
	return cmd
}

// newCapsCmd builds the capability dump subcommand.
func newCapsCmd() *cobra.Command {
	var ffmpegPath string

	cmd := &cobra.Command{
		Use:   "caps",
		Short: "Show detected encoders and hardware acceleration backends",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := "ffmpeg"
			if ffmpegPath != "" {
				path = ffmpegPath
			}
			cs := caps.Detect(cmd.Context(), path)
			if cs.Empty() {
				return fmt.Errorf("could not query %s", path)
			}

			accels := cs.HWAccels()
			sort.Strings(accels)
			fmt.Println("Hardware acceleration:")
			if len(accels) == 0 {
				fmt.Println("  (none)")
			}
			for _, a := range accels {
				fmt.Printf("  %s\n", a)
			}

			fmt.Println("Encoder selection:")
			for _, codec := range []config.VideoCodec{config.VideoH264, config.VideoHEVC, config.VideoAV1} {
				enc := cs.BestHWEncoder(codec)
				kind := "hardware"
				if enc == "" {
					enc = codec.SoftwareEncoder()
					kind = "software"
				}
				fmt.Printf("  %-5s -> %s (%s)\n", codec, enc, kind)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&ffmpegPath, "ffmpeg", "", "path to the ffmpeg binary")
	return cmd
}
