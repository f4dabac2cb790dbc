package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yungbote/speechcoach-backend/internal/content"
	"github.com/yungbote/speechcoach-backend/internal/domain"
)

type generateFlags struct {
	topic      string
	duration   int
	difficulty string
	kind       string
}

func newGenerateCommand(g *globalFlags) *cobra.Command {
	var f generateFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a reading passage or question set",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.request()
			if err != nil {
				return err
			}
			o, err := g.open(cmd.Context())
			if err != nil {
				return err
			}
			defer o.Close()

			out, err := content.NewGenerator(o.log).Generate(cmd.Context(), o.capability, req)
			if err != nil {
				return err
			}
			printContent(cmd.OutOrStdout(), req, out)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.topic, "topic", "Daily Reflection", "practice topic")
	cmd.Flags().IntVar(&f.duration, "duration", domain.DefaultDurationMinutes, "speaking time in minutes (1-10)")
	cmd.Flags().StringVar(&f.difficulty, "difficulty", string(domain.Intermediate), "Beginner, Intermediate or Advanced")
	cmd.Flags().StringVar(&f.kind, "kind", "passage", "passage or questions")
	return cmd
}

func (f generateFlags) request() (domain.GenerationRequest, error) {
	difficulty, err := domain.ParseDifficulty(f.difficulty)
	if err != nil {
		return domain.GenerationRequest{}, err
	}
	kind, err := domain.ParseContentKind(f.kind)
	if err != nil {
		return domain.GenerationRequest{}, err
	}
	return domain.NewGenerationRequest(f.topic, f.duration, difficulty, kind)
}

func printContent(w io.Writer, req domain.GenerationRequest, c domain.StudyContent) {
	heading := color.New(color.FgHiCyan, color.Bold)
	heading.Fprintf(w, "%s · %s · %d min · %s\n\n", req.Topic(), req.Difficulty(), req.DurationMinutes(), req.Kind())
	if c.Kind == domain.ReadingPassage {
		fmt.Fprintln(w, c.Passage)
		return
	}
	for _, s := range domain.Sections {
		text := c.Sections.Display(s)
		if text == s.Placeholder() {
			color.New(color.FgYellow).Fprintln(w, text)
		} else {
			fmt.Fprintln(w, text)
		}
		fmt.Fprintln(w)
	}
}
