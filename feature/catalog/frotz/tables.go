package frotz

import "golang.org/x/text/language"

// GameList lists every known game. The first entry is the generic descriptor
// used for Z-code files that match no fingerprint.
var GameList = []PlainGameDescriptor{
	{GenericGameID, GenericDescription},

	// Infocom
	{"zork0", "Zork Zero: The Revenge of Megaboz"},
	{"zork1", "Zork I: The Great Underground Empire"},
	{"zork2", "Zork II: The Wizard of Frobozz"},
	{"zork3", "Zork III: The Dungeon Master"},
	{"minizork", "Mini-Zork"},
	{"enchanter", "Enchanter"},
	{"sorcerer", "Sorcerer"},
	{"spellbreaker", "Spellbreaker"},
	{"planetfall", "Planetfall"},
	{"stationfall", "Stationfall"},
	{"starcross", "Starcross"},
	{"suspended", "Suspended"},
	{"deadline", "Deadline"},
	{"witness", "The Witness"},
	{"suspect", "Suspect"},
	{"infidel", "Infidel"},
	{"cutthroats", "Cutthroats"},
	{"hollywoodhijinx", "Hollywood Hijinx"},
	{"lurkinghorror", "The Lurking Horror"},
	{"moonmist", "Moonmist"},
	{"ballyhoo", "Ballyhoo"},
	{"trinity", "Trinity"},
	{"amfv", "A Mind Forever Voyaging"},
	{"bureaucracy", "Bureaucracy"},
	{"hhgttg", "The Hitchhiker's Guide to the Galaxy"},
	{"wishbringer", "Wishbringer"},
	{"seastalker", "Seastalker"},
	{"plunderedhearts", "Plundered Hearts"},
	{"nordandbert", "Nord and Bert Couldn't Make Head or Tail of It"},
	{"sherlockriddle", "Sherlock: The Riddle of the Crown Jewels"},
	{"beyondzork", "Beyond Zork: The Coconut of Quendor"},
	{"shogun", "James Clavell's Shogun"},
	{"journey", "Journey"},
	{"arthur", "Arthur: The Quest for Excalibur"},
	{"borderzone", "Border Zone"},
	{"leathergoddesses", "Leather Goddesses of Phobos"},
	{"sampler1", "Infocom Sampler"},

	// Post-Infocom
	{"curses", "Curses"},
	{"jigsaw", "Jigsaw"},
	{"anchorhead", "Anchorhead"},
	{"photopia", "Photopia"},
	{"spiderandweb", "Spider and Web"},
	{"galatea", "Galatea"},
	{"balances", "Balances"},
	{"christminster", "Christminster"},
	{"lostpig", "Lost Pig"},
	{"905", "9:05"},
	{"adventure", "Adventure"},
	{"abenteuer", "Abenteuer"},
	{"aventura", "La Aventura Original"},
}

// Games holds sample fingerprints. Each record matches a synthetic story
// built by frotztest.Story with the release and serial in its Extra label,
// and none of them identifies a published release. Real fingerprints come
// from the catalog overlay (see DecodeCatalog and Table.Merge).
var Games = []GameDescription{
	entry("zork1", "R1-S000001 sample", "87cb5f3acf01fbb59d60406850abdd64", 6000),
	entry("zork1", "R2-S000002 sample", "0987e239955019f1887477e2f507ce54", 6000),
	entryOpts("beyondzork", "R1-S000003 sample", "c0f8d4e766c69180f662d392f727eeda", 6000, GUIOBeyondZork, GUIOColors),
	entryLang("abenteuer", "R1-S000004 sample", "ab0032416eb764ae5e1366186c84d9d8", 6000, language.German),
}

var defaultOptions = GUIOptions{GUIONoSpeech, GUIONoMusic}

func entry(id, extra, md5 string, size int64) GameDescription {
	return entryLang(id, extra, md5, size, language.English)
}

func entryLang(id, extra, md5 string, size int64, lang language.Tag) GameDescription {
	return GameDescription{
		GameID:     id,
		Extra:      extra,
		MD5:        md5,
		FileSize:   size,
		Language:   lang,
		GUIOptions: append(GUIOptions(nil), defaultOptions...),
	}
}

func entryOpts(id, extra, md5 string, size int64, opts ...GUIOption) GameDescription {
	g := entry(id, extra, md5, size)
	g.GUIOptions = append(g.GUIOptions, opts...)
	return g
}

// BuiltinTable returns the compiled-in detection table.
func BuiltinTable() *Table {
	return &Table{
		Descriptors: append([]PlainGameDescriptor(nil), GameList...),
		Games:       append([]GameDescription(nil), Games...),
	}
}
