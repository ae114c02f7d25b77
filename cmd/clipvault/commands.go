/*
MIT License

Copyright (c) 2025 Yuval Adar <adary@adary.org>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/adaryorg/clipvault/internal/storage"
	"github.com/adaryorg/clipvault/internal/ui"
)

const listPreviewWidth = 60

func (a *app) newAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add [text...]",
		Short: "Store text as a new clip (reads stdin when no text is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			content := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				content = string(data)
			}
			if strings.TrimSpace(content) == "" {
				return errors.New("nothing to add")
			}

			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			store, err := a.openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			id, err := store.SaveClip(content, time.Now())
			if err != nil {
				return fmt.Errorf("failed to save clip: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[OK] Added clip %d\n", id)
			return nil
		},
	}
}

func (a *app) newListCommand() *cobra.Command {
	var (
		limit  int
		date   string
		tag    string
		search string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print clips (recent by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = cfg.UI.RecentLimit
			}

			store, err := a.openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			clips, err := selectClips(store, limit, date, tag, search)
			if err != nil {
				return err
			}

			clipTags, err := store.LoadClipTags()
			if err != nil {
				return fmt.Errorf("failed to load tags: %w", err)
			}
			printClips(cmd.OutOrStdout(), clips, clipTags)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of recent clips (default [ui] recent_limit)")
	cmd.Flags().StringVar(&date, "date", "", "Only clips from this day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&tag, "tag", "", "Only clips with this tag")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Only clips containing this text")
	cmd.MarkFlagsMutuallyExclusive("date", "tag", "search")
	return cmd
}

func selectClips(store *storage.Storage, limit int, date, tag, search string) ([]storage.Clip, error) {
	switch {
	case date != "":
		day, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
		}
		return store.LoadClipsForDate(day)
	case tag != "":
		tags, err := store.LoadTags()
		if err != nil {
			return nil, err
		}
		for _, t := range tags {
			if strings.EqualFold(t.Name, tag) {
				return store.LoadClipsForTag(t.ID)
			}
		}
		return nil, fmt.Errorf("no tag named %q", tag)
	case search != "":
		return store.SearchClips(search, limit)
	default:
		return store.LoadRecentClips(limit)
	}
}

func printClips(w io.Writer, clips []storage.Clip, clipTags map[int64][]string) {
	if len(clips) == 0 {
		fmt.Fprintln(w, "[INFO] No clips found")
		return
	}

	for _, clip := range clips {
		marker := " "
		if clip.Pinned {
			marker = "*"
		}
		line := fmt.Sprintf("%5d %s %-32s %s", clip.ID, marker, ui.FormatTimestamp(clip.Timestamp), preview(clip.Content, listPreviewWidth))
		if tags := clipTags[clip.ID]; len(tags) > 0 {
			line += "  [" + strings.Join(tags, ", ") + "]"
		}
		fmt.Fprintln(w, line)
	}
}

// preview flattens content to one line of at most width runes.
func preview(content string, width int) string {
	flat := strings.Join(strings.Fields(content), " ")
	runes := []rune(flat)
	if len(runes) <= width {
		return flat
	}
	return string(runes[:width-3]) + "..."
}

func (a *app) newTagsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List tags with their clip counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			store, err := a.openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			tags, err := store.LoadTags()
			if err != nil {
				return fmt.Errorf("failed to load tags: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(tags) == 0 {
				fmt.Fprintln(out, "[INFO] No tags defined")
				return nil
			}
			for _, t := range tags {
				count, err := store.CountClipsForTag(t.ID)
				if err != nil {
					return fmt.Errorf("failed to count clips for %s: %w", t.Name, err)
				}
				color := t.Color
				if color == "" {
					color = "default"
				}
				fmt.Fprintf(out, "%-24s %5d  %s\n", t.Name, count, color)
			}
			return nil
		},
	}
}

func (a *app) newResetCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every clip and tag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to delete all entries without --yes")
			}

			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			store, err := a.openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			count, err := store.Count()
			if err != nil {
				return fmt.Errorf("failed to count clips: %w", err)
			}
			if err := store.Reset(); err != nil {
				return fmt.Errorf("failed to reset database: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[OK] Removed %d clips\n", count)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm deletion")
	return cmd
}
