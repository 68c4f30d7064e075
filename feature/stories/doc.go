// Package stories manages the story files of a library bucket.
//
// A story is identified by its fingerprint key (md5:filesize) across three
// stores: the detection catalog, the story objects under the stories prefix
// and the library database. ScanStories reports gaps between them,
// CheckStoryItem looks at a single story and Reconcile purges or syncs.
package stories
