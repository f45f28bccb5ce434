// Package pkg provides the libraries behind factoryfloor.
//
// # Overview
//
// A factory floor is a row of numbered positions. Each position starts with
// one block carrying the same number, and blocks are moved around in piles
// by four commands: move onto, move over, pile onto and pile over. The pkg
// directory is organized in three layers:
//
//  1. [floor] - the floor itself and the four moves
//  2. [command], [render], [io] - scripts, text output and JSON snapshots
//  3. [pipeline], [cache], [config], [observability] - running scripts with
//     caching, configuration and hooks
//
// # Architecture
//
//	script text
//	     ↓
//	[command] (parse into moves)
//	     ↓
//	[floor] (apply moves)        ←→  [cache] (file or Redis)
//	     ↓
//	[render] / [io] (text or snapshot)
//
// [pipeline] wires these together for the CLI.
//
// # Quick Start
//
//	f, _ := floor.New(4)
//	f.MoveOnto(1, 2)
//	f.PileOver(3, 2)
//	fmt.Println(render.Text(f, render.DividerInline))
//	// 0: 0 | 1: | 2: 2 1 3 | 3:
//
// Running a whole script with caching:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{Script: "4\nmove 1 onto 2\n"})
//
// # Errors
//
// Every package reports failures as [errors.Error] values with a code such
// as NOT_FOUND or INVALID_INPUT, so callers can branch on [errors.Is]
// without matching strings.
//
// [floor]: https://pkg.go.dev/github.com/matzehuels/factoryfloor/pkg/floor
// [command]: https://pkg.go.dev/github.com/matzehuels/factoryfloor/pkg/command
// [render]: https://pkg.go.dev/github.com/matzehuels/factoryfloor/pkg/render
// [io]: https://pkg.go.dev/github.com/matzehuels/factoryfloor/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/factoryfloor/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/factoryfloor/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/factoryfloor/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/factoryfloor/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/factoryfloor/pkg/errors
// [errors.Error]: https://pkg.go.dev/github.com/matzehuels/factoryfloor/pkg/errors#Error
// [errors.Is]: https://pkg.go.dev/github.com/matzehuels/factoryfloor/pkg/errors#Is
package pkg
