package system

import "github.com/l1jgo/sysmgr/internal/core/discovery"

func init() {
	discovery.Register(discovery.Describe(NewEventDispatchSystem, discovery.TagSystem))
	discovery.Register(discovery.Describe(NewMotionSystem, discovery.TagSystem))
	discovery.Register(discovery.Describe(NewLifetimeSystem, discovery.TagSystem))
	discovery.Register(discovery.Describe(NewCleanupSystem, discovery.TagSystem))
	discovery.Register(discovery.Describe(NewStatsRenderer, discovery.TagSystem))
}
