/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package sendmoney implements a guided conversational agent for money
// transfers.
//
// The agent collects four details through natural conversation: the
// amount, the destination country, the beneficiary name, and the
// delivery method. The model records each detail as it appears by
// calling the update_transfer_details tool, which keeps the session's
// view of the transfer authoritative even when the user corrects an
// earlier answer. Once all four details are collected, the model emits
// a JSON summary of the transfer.
//
// Each Session wraps one model conversation. Session.Turn runs one user
// message under operation capture, so a tracing factory installed via
// Config.Tracing observes every turn's start, completion, token usage,
// and tool calls.
package sendmoney
