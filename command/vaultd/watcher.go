// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"
)

// reload log levels whenever the configuration file is written
//
// only the levels change at run time, everything else needs a restart
type configWatcher struct {
	log      *logger.L
	watcher  *fsnotify.Watcher
	fileName string
	reload   func(*Configuration)
}

func newConfigWatcher(log *logger.L, fileName string, reload func(*Configuration)) (*configWatcher, error) {
	fileName, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		return nil, err
	}

	// watch the directory so editors that replace the file are seen
	if err := watcher.Add(filepath.Dir(fileName)); nil != err {
		_ = watcher.Close()
		return nil, err
	}

	return &configWatcher{
		log:      log,
		watcher:  watcher,
		fileName: fileName,
		reload:   reload,
	}, nil
}

// Run - background process to handle file events
func (w *configWatcher) Run(args interface{}, shutdown <-chan struct{}) {
	w.log.Infof("watching: %q", w.fileName)

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			if filepath.Clean(event.Name) != w.fileName {
				continue loop
			}
			if !watcherEventFileChange(event) {
				continue loop
			}
			w.log.Infof("configuration event: %v", event)
			w.refresh()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			w.log.Errorf("watcher error: %s", err)
		}
	}

	_ = w.watcher.Close()
	w.log.Info("stopped")
}

func (w *configWatcher) refresh() {
	configuration, err := getConfiguration(w.fileName)
	if nil != err {
		w.log.Errorf("failed to read configuration from: %q  error: %s", w.fileName, err)
		return
	}
	w.reload(configuration)
}

func watcherEventFileChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create
}
