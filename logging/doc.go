// Package logging is ZitMail's process-embedded logger: a thin,
// concurrency-safe facade over rs/zerolog with console rendering and an
// asynchronous, line-count-rolled file recorder.
//
// Key features
//   - Leveled calls (Debug/Info/Warn/Error plus printf variants) rendered to
//     the console, optionally with truecolor level labels
//   - Optional persistence through a single background worker: buffered
//     writes, periodic flush, and rolling truncation to a maximum line count
//   - Producers never block on persistence; overflow is counted, not propagated
//   - Graceful shutdown that drains and flushes before Close returns
//
// Typical usage
//
//	svc, err := logging.NewBuilder().
//		Record(true).
//		Roll(1000).
//		Color(true).
//		TimeZone("Asia/Shanghai").
//		Build()
//	if err != nil {
//		panic(err)
//	}
//	defer svc.Close()
//
//	svc.Info("启动完成")
//	svc.Warnf("磁盘剩余 %d MB", free)
package logging
