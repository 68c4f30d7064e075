// Package frotz identifies Z-machine story files.
//
// A story is identified by the md5 of its first DetectionBytes bytes. Blorb
// containers must also match the recorded file size. Files that match no
// record but carry a valid Z-machine header are reported as the generic
// "zcode" game with an R<release>-S<serial> label.
//
// The compiled-in table lists real game titles (GameList) but only sample
// fingerprints (Games). Deployments layer a JSON catalog object carrying
// real fingerprints on top of it through DecodeCatalog and Table.Merge.
package frotz
