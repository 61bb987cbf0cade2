// Package store 提供 core.Store 的实现，用于分发模型、标签、标准化参数等制品。
//
// 接口定义在 core 包：
//
//	var s core.Store = store.NewMemoryStore()
//	var r core.Store, _ = store.NewRedisStore(store.RedisOptions{Addr: "localhost:6379"})
package store
