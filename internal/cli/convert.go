package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"slidecast/internal/config"
	"slidecast/internal/converter"
	"slidecast/internal/history"
	"slidecast/internal/tts"
)

func NewConvertCmd(deps *Dependencies) *cobra.Command {
	var (
		output      string
		slideFilter string
		scriptPath  string
		provider    string
		voice       string
		minTime     int
		pauseTime   int
		speed       float64
		fps         int
	)

	cmd := &cobra.Command{
		Use:   "convert <deck.pptx>",
		Short: "Convert one deck into a narrated video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deckPath := args[0]
			cfg := *deps.Cfg

			if provider != "" {
				cfg.TTS.Provider = provider
			}
			if voice != "" {
				cfg.TTS.Voice = voice
			}
			if cmd.Flags().Changed("min-time") {
				cfg.Timing.MinTimePerSlide = minTime
			}
			if cmd.Flags().Changed("pause") {
				cfg.Timing.PauseTimeAtEnd = pauseTime
			}
			if cmd.Flags().Changed("speed") {
				cfg.Timing.Speed = speed
			}
			if cmd.Flags().Changed("fps") {
				cfg.Timing.FPS = fps
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if output == "" {
				base := strings.TrimSuffix(filepath.Base(deckPath), filepath.Ext(deckPath))
				output = filepath.Join(cfg.Paths.Output, base+".mp4")
			}

			conv, closeHistory, err := buildConverter(deps, &cfg)
			if err != nil {
				return err
			}
			defer closeHistory()

			return conv.Convert(cmd.Context(), converter.Request{
				DeckPath:    deckPath,
				OutputPath:  output,
				SlideFilter: slideFilter,
				ScriptPath:  scriptPath,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output video path (default: <output dir>/<deck>.mp4)")
	cmd.Flags().StringVar(&slideFilter, "slides", "", "Slide subset, e.g. \"2,4-6\" (default: all)")
	cmd.Flags().StringVar(&scriptPath, "script", "", "Also write the narration script to this docx path")
	cmd.Flags().StringVar(&provider, "provider", "", "Narration provider: google or gemini")
	cmd.Flags().StringVar(&voice, "voice", "", "Voice identifier (gemini) or accent TLD (google)")
	cmd.Flags().IntVar(&minTime, "min-time", 0, "Default minimum seconds per slide")
	cmd.Flags().IntVar(&pauseTime, "pause", 0, "Default pause seconds at end of each slide")
	cmd.Flags().Float64Var(&speed, "speed", 1.0, "Global playback speed factor")
	cmd.Flags().IntVar(&fps, "fps", 30, "Output frame rate")

	return cmd
}

// buildConverter wires a converter for one command invocation. History
// recording is best-effort: a broken history database logs a warning and the
// run proceeds without it.
func buildConverter(deps *Dependencies, cfg *config.Config) (converter.Converter, func(), error) {
	synth, err := tts.New(cfg, deps.APIKeys, deps.Exec, deps.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("create synthesizer: %w", err)
	}

	var rec history.Recorder
	closeHistory := func() {}

	repo, err := history.Open(cfg.History.Database)
	if err != nil {
		deps.Log.Warn(context.Background(), "Run history disabled: %v", err)
	} else {
		rec = repo
		closeHistory = func() { repo.Close() }
	}

	return converter.New(cfg, deps.Exec, synth, rec, deps.Log), closeHistory, nil
}
