// SPDX-License-Identifier: Unlicense OR MIT

// Command shelldemo opens the windows declared in a manifest on the
// headless driver, attaches a status area tray and logs the event
// stream. It exists to exercise the full dispatch surface without a
// display server.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/vitrine-app/vitrine/app"
	"github.com/vitrine-app/vitrine/app/headless"
	"github.com/vitrine-app/vitrine/config"
	"github.com/vitrine-app/vitrine/io/system"
	"github.com/vitrine-app/vitrine/menu"
	"github.com/vitrine-app/vitrine/systrayhost"
)

func main() {
	configPath := flag.String("config", "shelldemo.yaml", "manifest path")
	useTray := flag.Bool("tray", false, "register a real status area icon")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load manifest", "err", err)
		os.Exit(1)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.SlogLevel(),
	}))
	slog.SetDefault(log)

	var drvOpts []headless.Option
	if *useTray {
		drvOpts = append(drvOpts, headless.WithTrayBackend(systrayhost.New()))
	}
	driver := headless.New(drvOpts...)
	rt := app.New(driver, app.WithLogger(log))
	h := rt.Handle()

	go setup(h, cfg, log)

	rt.Run(func(ev app.RunEvent) {
		switch e := ev.(type) {
		case app.ReadyEvent:
			log.Info("ready", "app", cfg.App.Name)
		case app.WindowEvent:
			logWindowEvent(log, e)
		case app.UserEvent:
			log.Info("user event", "data", e.Data)
		case app.ExitRequestedEvent:
			log.Info("exit requested")
		case app.ExitEvent:
			log.Info("exiting")
		}
	})
}

func setup(h *app.Handle, cfg *config.Config, log *slog.Logger) {
	for _, wc := range cfg.Windows {
		opts, err := wc.Options()
		if err != nil {
			log.Error("window options", "label", wc.Label, "err", err)
			continue
		}
		w, err := h.CreateWindow(wc.Label, opts...)
		if err != nil {
			log.Error("create window", "label", wc.Label, "err", err)
			continue
		}
		log.Info("window created", "label", w.Label(), "peers", h.Windows())
	}

	if cfg.Tray != nil {
		if err := setupTray(h, *cfg.Tray, log); err != nil {
			log.Error("create tray", "err", err)
		}
	}

	// Exercise the proxy path: a ticker payload every few seconds
	// until the loop goes away.
	proxy := h.CreateProxy()
	go func() {
		for range time.Tick(5 * time.Second) {
			if err := proxy.Send(time.Now().Format(time.TimeOnly)); err != nil {
				return
			}
		}
	}()
}

func setupTray(h *app.Handle, tc config.TrayConfig, log *slog.Logger) error {
	show := menu.NewItem("Show all windows")
	hide := menu.NewItem("Hide all windows")
	quit := menu.NewItem("Quit")
	trayMenu := menu.Menu{Items: []menu.Entry{
		show, hide,
		menu.Native{Kind: menu.Separator},
		quit,
	}}

	opts, err := tc.Options()
	if err != nil {
		return err
	}
	opts.Menu = &trayMenu
	tray, err := h.SystemTray(opts)
	if err != nil {
		return err
	}

	_, err = tray.OnEvent(func(ev app.TrayEvent) {
		click, ok := ev.(app.TrayMenuItemClickEvent)
		if !ok {
			return
		}
		switch click.ItemID {
		case show.ID:
			forEachWindow(h, (*app.Window).Show)
		case hide.ID:
			forEachWindow(h, (*app.Window).Hide)
		case quit.ID:
			if err := h.RequestExit(); err != nil {
				log.Warn("request exit", "err", err)
			}
		}
	})
	return err
}

func forEachWindow(h *app.Handle, f func(*app.Window) error) {
	for _, label := range h.Windows() {
		if w, ok := h.Window(label); ok {
			f(w)
		}
	}
}

func logWindowEvent(log *slog.Logger, e app.WindowEvent) {
	switch we := e.Event.(type) {
	case system.ResizedEvent:
		log.Info("resized", "label", e.Label, "size", we.Size)
	case system.MovedEvent:
		log.Info("moved", "label", e.Label, "position", we.Position)
	case system.CloseRequestedEvent:
		log.Info("close requested", "label", e.Label)
	case system.DestroyedEvent:
		log.Info("destroyed", "label", e.Label)
	case system.FocusedEvent:
		log.Debug("focus", "label", e.Label, "focused", we.Focused)
	case system.ThemeChangedEvent:
		log.Info("theme changed", "label", e.Label, "theme", we.Theme)
	case system.FileDropEvent:
		log.Info("file drop", "label", e.Label, "kind", we.Kind, "paths", we.Paths)
	}
}
