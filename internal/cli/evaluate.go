package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yungbote/speechcoach-backend/internal/audio"
	"github.com/yungbote/speechcoach-backend/internal/chart"
	"github.com/yungbote/speechcoach-backend/internal/domain"
	"github.com/yungbote/speechcoach-backend/internal/evaluation"
	"github.com/yungbote/speechcoach-backend/internal/scoring"
)

type evaluateFlags struct {
	audioPath  string
	topic      string
	duration   int
	difficulty string
	chartPath  string
	jsonPath   string
}

func newEvaluateCommand(g *globalFlags) *cobra.Command {
	var f evaluateFlags
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Transcribe and score a recorded answer",
		RunE: func(cmd *cobra.Command, args []string) error {
			difficulty, err := domain.ParseDifficulty(f.difficulty)
			if err != nil {
				return err
			}
			if err := domain.ValidateDuration(f.duration); err != nil {
				return err
			}
			payload, err := readAudioFile(f.audioPath)
			if err != nil {
				return err
			}

			o, err := g.open(cmd.Context())
			if err != nil {
				return err
			}
			defer o.Close()

			rec, err := evaluation.NewEvaluator(o.log).Evaluate(cmd.Context(), o.capability, evaluation.Input{
				Audio:           payload,
				Topic:           f.topic,
				DurationMinutes: f.duration,
				Difficulty:      difficulty,
			})
			if err != nil {
				var ee *evaluation.EvaluationError
				if errors.As(err, &ee) && ee.Raw != "" {
					color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "raw reply:\n%s\n", ee.Raw)
				}
				return err
			}
			printEvaluation(cmd.OutOrStdout(), rec)

			if f.chartPath != "" {
				png, err := chart.Radar(rec.Scores)
				if err != nil {
					return fmt.Errorf("render chart: %w", err)
				}
				if err := os.WriteFile(f.chartPath, png, 0o644); err != nil {
					return fmt.Errorf("write chart: %w", err)
				}
			}
			if f.jsonPath != "" {
				b, err := json.MarshalIndent(rec, "", "  ")
				if err != nil {
					return err
				}
				if err := os.WriteFile(f.jsonPath, b, 0o644); err != nil {
					return fmt.Errorf("write json: %w", err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&f.audioPath, "audio", "", "recorded answer (mp3, wav, m4a, ogg, webm, flac)")
	cmd.Flags().StringVar(&f.topic, "topic", "Daily Reflection", "topic the answer was about")
	cmd.Flags().IntVar(&f.duration, "duration", domain.DefaultDurationMinutes, "expected speaking time in minutes")
	cmd.Flags().StringVar(&f.difficulty, "difficulty", string(domain.Intermediate), "Beginner, Intermediate or Advanced")
	cmd.Flags().StringVar(&f.chartPath, "chart", "", "write the radar chart PNG here")
	cmd.Flags().StringVar(&f.jsonPath, "json", "", "write the evaluation record as JSON here")
	_ = cmd.MarkFlagRequired("audio")
	return cmd
}

func readAudioFile(path string) (domain.AudioPayload, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.AudioPayload{}, err
	}
	defer f.Close()
	return audio.FromReader(filepath.Base(path), f, audio.DefaultMaxBytes)
}

func scoreColor(score int) *color.Color {
	switch {
	case score >= 8:
		return color.New(color.FgGreen)
	case score >= 5:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func printEvaluation(w io.Writer, rec domain.EvaluationRecord) {
	bold := color.New(color.Bold)
	bold.Fprintln(w, "Transcript")
	fmt.Fprintf(w, "%s\n\n", rec.RawTranscription)

	bold.Fprintln(w, "Scores")
	for _, item := range scoring.Breakdown(rec.Scores) {
		fmt.Fprintf(w, "  %-14s ", item.Label)
		scoreColor(item.Score).Fprintf(w, "%2d/10\n", item.Score)
	}
	overall := scoring.Overall(rec.Scores)
	fmt.Fprintf(w, "  %-14s ", "Overall")
	scoreColor(int(overall)).Fprintf(w, "%.1f/10 (%s)\n\n", overall, scoring.Band(overall))

	bold.Fprintln(w, "Feedback")
	for _, c := range domain.Criteria {
		if fb := rec.DetailedFeedback[c]; fb != "" {
			fmt.Fprintf(w, "  %s: %s\n", c.Label(), fb)
		}
	}
	printList(w, bold, "Strengths", rec.Strengths, color.FgGreen)
	printList(w, bold, "Recommendations", rec.ImprovementRecommendations, color.FgCyan)
}

func printList(w io.Writer, bold *color.Color, title string, items []string, c color.Attribute) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w)
	bold.Fprintln(w, title)
	bullet := color.New(c)
	for _, it := range items {
		bullet.Fprint(w, "  • ")
		fmt.Fprintln(w, it)
	}
}
