// SPDX-License-Identifier: Unlicense OR MIT

package headless

import "sync"

// Webview is an in-memory webview. It records evaluated scripts so
// tests can assert on them.
type Webview struct {
	mu       sync.Mutex
	url      string
	scripts  []string
	prints   int
	devTools bool
	devOpen  bool
}

func (wv *Webview) EvalScript(js string) error {
	wv.mu.Lock()
	wv.scripts = append(wv.scripts, js)
	wv.mu.Unlock()
	return nil
}

func (wv *Webview) URL() string {
	wv.mu.Lock()
	defer wv.mu.Unlock()
	return wv.url
}

func (wv *Webview) Print() error {
	wv.mu.Lock()
	wv.prints++
	wv.mu.Unlock()
	return nil
}

func (wv *Webview) OpenDevTools() {
	wv.mu.Lock()
	wv.devOpen = true
	wv.mu.Unlock()
}

func (wv *Webview) CloseDevTools() {
	wv.mu.Lock()
	wv.devOpen = false
	wv.mu.Unlock()
}

func (wv *Webview) IsDevToolsOpen() bool {
	wv.mu.Lock()
	defer wv.mu.Unlock()
	return wv.devOpen
}

// Navigate changes the URL the webview reports.
func (wv *Webview) Navigate(url string) {
	wv.mu.Lock()
	wv.url = url
	wv.mu.Unlock()
}

// Scripts returns the evaluated scripts in order, including init
// scripts.
func (wv *Webview) Scripts() []string {
	wv.mu.Lock()
	defer wv.mu.Unlock()
	return append([]string(nil), wv.scripts...)
}
