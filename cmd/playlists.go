package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/desertthunder/mixtape/internal/library"
	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/shared"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/urfave/cli/v3"
)

// PlaylistsList prints every saved playlist.
func (r *Runner) PlaylistsList(ctx context.Context, cmd *cli.Command) error {
	return r.withStore(cmd, func(store *library.Store) error {
		playlists := store.Playlists()
		if cmd.Bool("json") {
			return r.writeJSON(playlists, true)
		}

		if len(playlists) == 0 {
			return r.writePlain("No playlists. Create one with 'mixtape playlists create NAME'\n")
		}

		t := r.newTable()
		t.AppendHeader(table.Row{"ID", "Name", "Tracks"})
		for _, pl := range playlists {
			t.AppendRow(table.Row{pl.ID, pl.Name, pl.Len()})
		}
		t.Render()
		return nil
	})
}

// PlaylistsShow prints the tracks of one playlist.
func (r *Runner) PlaylistsShow(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	return r.withStore(cmd, func(store *library.Store) error {
		pl, ok := store.Playlist(id)
		if !ok {
			return fmt.Errorf("%w: %d", shared.ErrPlaylistNotFound, id)
		}

		if cmd.Bool("json") {
			return r.writeJSON(pl, true)
		}

		r.writePlain("%s (%d tracks)\n", text.Bold.Sprint(pl.Name), pl.Len())
		t := r.newTable()
		t.AppendHeader(table.Row{"#", "Title", "Artist", "Genre", "Path"})
		for i, track := range pl.Tracks {
			t.AppendRow(table.Row{i + 1, track.Title, track.Artist, track.Genre, track.Path})
		}
		t.Render()
		return nil
	})
}

// PlaylistsCreate creates an empty playlist with the given name.
func (r *Runner) PlaylistsCreate(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")

	return r.withStore(cmd, func(store *library.Store) error {
		pl, err := store.CreatePlaylist(name)
		if err != nil {
			return err
		}

		r.logger.Info("created playlist", "id", pl.ID, "name", pl.Name)
		return r.writePlain("Created playlist %q (%d)\n", pl.Name, pl.ID)
	})
}

// PlaylistsDelete deletes the playlist with the given id.
func (r *Runner) PlaylistsDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	return r.withStore(cmd, func(store *library.Store) error {
		pl, ok := store.Playlist(id)
		if !ok {
			return fmt.Errorf("%w: %d", shared.ErrPlaylistNotFound, id)
		}

		if err := store.DeletePlaylist(id); err != nil {
			return err
		}
		return r.writePlain("Deleted playlist %q\n", pl.Name)
	})
}

// Theme prints the persisted theme, or sets it when an argument is given.
func (r *Runner) Theme(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	repo, db, err := r.openStorage(config)
	if err != nil {
		return err
	}
	defer db.Close()

	arg := cmd.StringArg("theme")
	if arg == "" {
		return r.writePlain("%s\n", library.LoadTheme(repo))
	}

	theme := models.Theme(arg)
	if !theme.Valid() {
		return fmt.Errorf("%w: theme must be %q or %q, got %q", shared.ErrInvalidArgument, models.ThemeDark, models.ThemeLight, arg)
	}

	if err := library.SaveTheme(repo, theme); err != nil {
		return err
	}
	return r.writePlain("Theme set to %s\n", theme)
}

// Scan lists the audio files found under the given paths with the metadata an import would assign.
func (r *Runner) Scan(ctx context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return fmt.Errorf("%w: at least one path is required", shared.ErrMissingArgument)
	}

	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	readTags := config.Library.ReadTags
	if cmd.IsSet("tags") {
		readTags = cmd.Bool("tags")
	}

	files, err := library.ExpandPaths(paths)
	if err != nil {
		if len(files) == 0 {
			return err
		}
		r.logger.Warn("skipping unreadable paths", "err", err)
	}

	tracks := make([]models.Track, 0, len(files))
	for _, f := range files {
		track, err := library.Describe(f, readTags)
		if err != nil {
			r.logger.Debug("using default metadata", "path", f, "err", err)
		}
		tracks = append(tracks, track)
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, true)
	}

	t := r.newTable()
	t.AppendHeader(table.Row{"Title", "Artist", "Genre", "Path"})
	for _, track := range tracks {
		t.AppendRow(table.Row{track.Title, track.Artist, track.Genre, track.Path})
	}
	t.AppendFooter(table.Row{"", "", "Total", len(tracks)})
	t.Render()
	return nil
}

// withStore restores the library store from the command's database and runs fn with it.
func (r *Runner) withStore(cmd *cli.Command, fn func(*library.Store) error) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	store, _, db, err := r.openStore(config)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(store)
}

func (r *Runner) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.output)
	t.SetStyle(table.StyleLight)
	return t
}

func parseID(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: playlist id is required", shared.ErrMissingArgument)
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid playlist id %q", shared.ErrInvalidArgument, s)
	}
	return id, nil
}
