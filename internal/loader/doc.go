// Package loader supplies the raw call-for-papers markdown for a language.
//
// A source is either a filesystem path or an http(s) URL. Loading either
// yields the complete document or fails: an empty or whitespace-only payload
// is a failure, never an empty document.
//
// HTTP sources are retried on 429 Too Many Requests with exponential
// backoff; every other status outside 2xx fails immediately.
package loader
