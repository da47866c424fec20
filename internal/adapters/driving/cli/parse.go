package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lessonpage/internal/adapters/driven/config/file"
	"github.com/custodia-labs/lessonpage/internal/connectors/notion"
	"github.com/custodia-labs/lessonpage/internal/connectors/snapshot"
	"github.com/custodia-labs/lessonpage/internal/core/domain"
	"github.com/custodia-labs/lessonpage/internal/core/ports/driven"
	"github.com/custodia-labs/lessonpage/internal/core/services"
)

var (
	snapshotPath  string
	watchFlag     bool
	prettyFlag    bool
	documentOrder bool
	tokenFlag     string
)

var parseCmd = &cobra.Command{
	Use:   "parse [page-id]",
	Short: "Parse a lesson page into typed sections",
	Long: `Fetch a page's block tree and print its classified sections as JSON,
in teaching order (safety first, then overview, timeline, materials,
vocabulary, teaching steps, assessment, resources).

With --file, blocks are read from an exported JSON snapshot instead of the
API; --watch reparses whenever the snapshot changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&snapshotPath, "file", "f", "", "Parse an exported page snapshot instead of fetching")
	parseCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Reparse when the snapshot file changes (requires --file)")
	parseCmd.Flags().BoolVarP(&prettyFlag, "pretty", "p", false, "Indent the JSON output")
	parseCmd.Flags().BoolVar(&documentOrder, "document-order", false, "Keep sections in scan order instead of teaching order")
	parseCmd.Flags().StringVar(&tokenFlag, "token", "", "Notion integration token (overrides the configured one)")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	pageID := ""
	if len(args) == 1 {
		pageID = args[0]
	}

	fetcher, err := buildFetcher(pageID)
	if err != nil {
		return err
	}
	defer fetcher.Close()

	service := services.NewLessonService(fetcher)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if watchFlag {
		if snapshotPath == "" {
			return errors.New("--watch requires --file")
		}
		return runWatch(ctx, cmd, service, pageID)
	}

	lesson, err := parseOnce(ctx, service, pageID)
	if err != nil {
		return err
	}
	return printLesson(cmd, lesson)
}

func buildFetcher(pageID string) (driven.BlockFetcher, error) {
	if snapshotPath != "" {
		return snapshot.NewFetcher(snapshotPath), nil
	}

	if pageID == "" {
		return nil, errors.New("a page ID is required unless --file is given")
	}

	token := tokenFlag
	if token == "" {
		token = configStore.GetString(file.KeyNotionToken)
	}
	if token == "" {
		return nil, errors.New("no Notion token configured; run 'lessonpage config set-token' or pass --token")
	}

	var opts []notion.Option
	if rps := configStore.GetInt(file.KeyRequestsPerSecond); rps > 0 {
		opts = append(opts, notion.WithRequestsPerSecond(float64(rps)))
	}
	return notion.NewFetcher(token, opts...), nil
}

func parseOnce(ctx context.Context, service *services.LessonService, pageID string) (*domain.Lesson, error) {
	if documentOrder || configStore.GetBool(file.KeyDocumentOrder) {
		return service.ParsePageDocumentOrder(ctx, pageID)
	}
	return service.ParsePage(ctx, pageID)
}

func runWatch(ctx context.Context, cmd *cobra.Command, service *services.LessonService, pageID string) error {
	lessons, err := service.WatchPage(ctx, pageID)
	if err != nil {
		return err
	}
	for lesson := range lessons {
		if err := printLesson(cmd, &lesson); err != nil {
			return err
		}
	}
	return nil
}

func printLesson(cmd *cobra.Command, lesson *domain.Lesson) error {
	var (
		data []byte
		err  error
	)
	if prettyFlag {
		data, err = json.MarshalIndent(lesson, "", "  ")
	} else {
		data, err = json.Marshal(lesson)
	}
	if err != nil {
		return fmt.Errorf("encode lesson: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
