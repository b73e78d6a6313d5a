package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"ytnote/internal/downloader"
)

// colorize applies colors only when stdout is a terminal.
func colorize(colors text.Colors, msg string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return msg
	}
	return colors.Sprint(msg)
}

func renderVideoInfo(info *downloader.VideoInfo) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle("Video Information")
	tw.AppendHeader(table.Row{"Key", "Value"})

	rows := []struct {
		key   string
		value string
	}{
		{"id", info.ID},
		{"url", info.WebpageURL},
		{"title", info.Title},
		{"channel", info.Channel},
		{"categories", strings.Join(info.Categories, ", ")},
		{"duration", fmt.Sprintf("%.0fs", info.Duration)},
		{"views", fmt.Sprintf("%d", info.ViewCount)},
		{"likes", fmt.Sprintf("%d", info.LikeCount)},
		{"description", truncate(info.Description, 120)},
	}
	for _, row := range rows {
		if row.value == "" || row.value == "0" {
			continue
		}
		tw.AppendRow(table.Row{row.key, row.value})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 80},
	})

	return tw.Render()
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
