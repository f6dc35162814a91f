// Package render formats ranked leaderboard rows as a fixed-width text
// table suitable for a chat message.
//
// The table is wrapped in a fenced code block so the receiving client keeps
// the alignment, and a highlight line announcing the tracked team's rank is
// placed above the fence where chat markdown still applies. Rendering is
// deterministic: the same rows always yield a byte-identical block.
package render
