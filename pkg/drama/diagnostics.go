package drama

// Diagnostic placeholder strings. They are emitted as element text wherever
// the converter cannot confidently place a region, and are meant to be found
// by a curator via full-text search. Wording is fixed; downstream tooling
// greps for it.
const (
	warnUnhandled = "WARNING!, the following paragraph couldn't be handled\ncorrectly. You have to solve this by yourself."

	warnTitlePageAssumed = "WARNING!, it's just assumed that this is the title page, check\nthis. Also check if the following 'head' elements in 'front' may be (another)\ntitle page."

	warnHeadMisplaced = "WARNING!, the following 'head' might be slightly misplaced. Maybe\nthere is a more suitable parent tag or it might be another title page."

	warnRoleMissing = "WARNING!, it seems that the role is missing. You should fix this."

	warnFootnote = "WARNING!, this footnote couldn't be placed correctly, you have to\nsolve this by yourself."

	warnSetting = "WARNING!, the description of the setting (if existing) may\nbe misplaced as a 'roleDesc' element in the 'castList'. Place it at the correct place in an element like this."

	warnSpeaker = "WARNING!"

	warnSpeechGroupEnd = "WARNING! Place the closing 'spGrp' tag after the last 'sp' tag of the\nsinging."

	warnSpeakerMissing = "WARNING!, it seems that the speaker is missing."

	warnCatchWordHead = "WARNING!, the following 'head' element might be misplaced, i.e.\nthere could be a better place."

	warnNotPlaced = "WARNING!, the element isn't placed correctly, it still needs a solution."
)
