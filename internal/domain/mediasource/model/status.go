// SPDX-License-Identifier: Apache-2.0

package model

// MediaStatus is the reachability/health state of a source's backing
// files (§3). It is set by the Scanner port and surfaced to callers for
// UI rendering (§7, "User-visible behaviour").
type MediaStatus string

const (
	MediaStatusUnknown    MediaStatus = ""
	MediaStatusOnline     MediaStatus = "online"
	MediaStatusMissing    MediaStatus = "missing"
	MediaStatusCorrupt    MediaStatus = "corrupt"
	MediaStatusUnreadable MediaStatus = "unreadable"
)
