package router

import (
	"sort"

	"kunstcollectie/internal/transport/http/ez"
)

// Module 挂载到某个分组的一组接口
type Module interface{ Mount(ez.EZ) }

// 可选：实现该接口可控制挂载顺序（数值越小越先挂）
// 不实现则默认 100
type prioritizer interface{ Priority() int }

// mountAll 按优先级挂载；nil 模块跳过
func mountAll(e ez.EZ, mods ...Module) {
	list := make([]Module, 0, len(mods))
	for _, m := range mods {
		if m != nil {
			list = append(list, m)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return priorityOf(list[i]) < priorityOf(list[j])
	})
	for _, m := range list {
		m.Mount(e)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
