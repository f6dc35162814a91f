// Package dispatch delivers rendered standings to a chat webhook.
//
// One POST per run with a {"content": ...} JSON body; no retries and no
// response inspection. The webhook URL is resolved from the environment at
// send time so a rotated secret takes effect without a restart.
package dispatch
