package engine

// badgeImages is the level badge art, one entry per badge. Levels past
// the end wrap around.
var badgeImages = []string{
	"https://i.postimg.cc/d7qYLggG/1k.png",
	"https://i.postimg.cc/JGkmgNbH/2k.png",
	"https://i.postimg.cc/Fd65Czzx/3k.png",
	"https://i.postimg.cc/T5W8zxWv/4k.png",
	"https://i.postimg.cc/FYbvFhC9/5k.png",
	"https://i.postimg.cc/pygMDmgW/6k.png",
	"https://i.postimg.cc/vD1dgr22/7k.png",
	"https://i.postimg.cc/rD2cLDJn/8k.png",
	"https://i.postimg.cc/LqNMfNMw/9k.png",
	"https://i.postimg.cc/cgCGcwxH/10k.png",
	"https://i.postimg.cc/H8jWC0Rh/11k.png",
	"https://i.postimg.cc/4Ycdd5yC/12k.png",
	"https://i.postimg.cc/sB9gPg5w/13k.png",
	"https://i.postimg.cc/r0VFf2Jc/14k.png",
	"https://i.postimg.cc/r0fybZn4/15k.png",
	"https://i.postimg.cc/3WrdBmSp/16k.png",
	"https://i.postimg.cc/qt8zmLHc/17k.png",
	"https://i.postimg.cc/gnJLY83d/18k.png",
	"https://i.postimg.cc/rd6DCH3F/19k.png",
	"https://i.postimg.cc/Wq4z1cFS/20k.png",
	"https://i.postimg.cc/yJRT1NfX/21k.png",
	"https://i.postimg.cc/YjRzqZxV/22k.png",
	"https://i.postimg.cc/CBVszVXy/23k.png",
	"https://i.postimg.cc/6TthKtCn/24k.png",
	"https://i.postimg.cc/LnsBqDCs/25k.png",
	"https://i.postimg.cc/FkrbVVhD/26k.png",
	"https://i.postimg.cc/4nDT8gw9/27k.png",
	"https://i.postimg.cc/cvZGSBp1/28k.png",
	"https://i.postimg.cc/GHvnV5SS/29k.png",
	"https://i.postimg.cc/5X3dNFJB/30k.png",
	"https://i.postimg.cc/2LNq9Cy6/31k.png",
	"https://i.postimg.cc/dDGZkZNT/32k.png",
	"https://i.postimg.cc/7fVCX8kH/33k.png",
}

// BadgeCount reports how many distinct badges exist.
func BadgeCount() int { return len(badgeImages) }

// BadgeIndexForLevel returns the badge index earned at a level, wrapping
// past the last badge.
func BadgeIndexForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return (level - 1) % len(badgeImages)
}

// ClampBadgeIndex keeps a browsed badge index within the badges already
// earned: an index at or past the current level snaps back to the
// level's own badge.
func ClampBadgeIndex(index, level int) int {
	if level < 1 {
		level = 1
	}
	if index >= level {
		index = level - 1
	}
	if index < 0 {
		index = 0
	}
	if index >= len(badgeImages) {
		index = len(badgeImages) - 1
	}
	return index
}

// BadgeImage returns the art URL for a badge index. Out-of-range indexes
// clamp to the catalog bounds.
func BadgeImage(index int) string {
	if index < 0 {
		index = 0
	}
	if index >= len(badgeImages) {
		index = len(badgeImages) - 1
	}
	return badgeImages[index]
}
