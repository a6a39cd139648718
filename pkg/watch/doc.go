// Package watch re-runs work when data files change on disk.
//
// A Watcher observes one directory with fsnotify and hands the changed file
// paths to a callback once the directory has been quiet for the debounce
// interval. Callbacks never overlap.
//
//	w, err := watch.New(&watch.Config{Dir: "data", Pattern: "*.csv"}, logger)
//	if err != nil {
//		return err
//	}
//	defer w.Stop()
//	return w.Watch(ctx, func(ctx context.Context, paths []string) error {
//		_, err := runner.Run(ctx, paths)
//		return err
//	})
package watch
