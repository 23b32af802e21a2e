// Package stash provides a personal bookmark manager. Saved links and
// uploaded images are enriched with page metadata scraped from the target
// page and with tags and a summary produced by a language model.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, goquery/).
package stash
