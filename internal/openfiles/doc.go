// Package openfiles holds the paths the operating system passed at launch
// ("open with" associations) until the front-end collects them.
//
// Lifecycle: a Queue is built once at process start from the filtered launch
// arguments, drained by Take, never re-seeded, and dropped at process exit.
// The queue owns its paths until Take hands a copy to the caller.
package openfiles
