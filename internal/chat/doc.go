// Copyright (c) 2025 Matt Hollis
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat owns all conversation state for the client.
//
// The Store is the single owner of every Chat and Message: the chat map, the
// active-chat pointer, and the global streaming flag live behind one mutex,
// and every mutation goes through a small action set (CreateChat,
// SetCurrentChat, AddMessage, UpdateMessage, SetStreaming). Reads hand out
// deep copies, so no caller ever holds a mutable reference to store
// internals.
//
// Actions targeting an unknown chat or message are silent no-ops by
// contract: navigation can race an in-flight stream, and a late update must
// never crash the session. The one exception is CreateChat, which rejects a
// duplicate chat id with an error.
package chat
