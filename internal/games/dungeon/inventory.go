package dungeon

import (
	"sort"

	"github.com/vovakirdan/arcade-sim/internal/combat"
	"github.com/vovakirdan/arcade-sim/internal/config"
	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/profile"
)

// Item is a piece of equipment the player can own.
type Item int

const (
	ItemNone Item = iota
	ItemSword
	ItemShield
	ItemBoots
	ItemBombs
	ItemBow
	ItemBoomerang
	ItemHookshot
	ItemFireRod
	ItemIceRod
	ItemLamp
	ItemHammer
	ItemPowerGlove
	ItemTitanMitt
	itemCount
)

var itemNames = [itemCount]string{
	ItemNone:       "",
	ItemSword:      "sword",
	ItemShield:     "shield",
	ItemBoots:      "boots",
	ItemBombs:      "bombs",
	ItemBow:        "bow",
	ItemBoomerang:  "boomerang",
	ItemHookshot:   "hookshot",
	ItemFireRod:    "fire_rod",
	ItemIceRod:     "ice_rod",
	ItemLamp:       "lamp",
	ItemHammer:     "hammer",
	ItemPowerGlove: "power_glove",
	ItemTitanMitt:  "titan_mitt",
}

// String returns the item's save name.
func (i Item) String() string {
	if i < 0 || i >= itemCount {
		return ""
	}
	return itemNames[i]
}

// ParseItem maps a save name to an item.
func ParseItem(name string) (Item, bool) {
	for i, n := range itemNames {
		if n != "" && n == name {
			return Item(i), true
		}
	}
	return ItemNone, false
}

// Equippable reports whether the item can be bound to the use button.
func (i Item) Equippable() bool {
	switch i {
	case ItemBombs, ItemBow, ItemBoomerang, ItemHookshot, ItemFireRod, ItemIceRod, ItemLamp, ItemHammer:
		return true
	}
	return false
}

// Glove is the lifting strength tier.
type Glove int

const (
	GloveNone Glove = iota
	GlovePower
	GloveTitan
)

// Inventory is the player's equipment, counters and collected key items.
type Inventory struct {
	owned    [itemCount]bool
	Equipped Item

	Magic  combat.Pool
	Bombs  combat.Pool
	Arrows combat.Pool
	Rupees int
	keys   combat.Pool

	BossKeys    map[string]bool // By dungeon ID
	Maps        map[string]bool
	Compasses   map[string]bool
	HeartPieces int

	opened map[string]bool
}

// NewInventory returns the starting inventory: sword, shield and an empty bomb bag.
func NewInventory(p config.DungeonPlayer) *Inventory {
	inv := &Inventory{
		Magic:     combat.Pool{Current: p.Magic, Max: p.MaxMagic},
		Bombs:     combat.Pool{Max: p.AmmoCap},
		Arrows:    combat.Pool{Max: p.AmmoCap},
		BossKeys:  make(map[string]bool),
		Maps:      make(map[string]bool),
		Compasses: make(map[string]bool),
		opened:    make(map[string]bool),
	}
	inv.Grant(ItemSword)
	inv.Grant(ItemShield)
	inv.Grant(ItemBombs)
	inv.Equipped = ItemBombs
	return inv
}

// Has reports whether the item is owned.
func (inv *Inventory) Has(i Item) bool {
	return i > ItemNone && i < itemCount && inv.owned[i]
}

// Grant adds an item. Newly granted usable items are equipped right away.
func (inv *Inventory) Grant(i Item) {
	if i <= ItemNone || i >= itemCount {
		return
	}
	fresh := !inv.owned[i]
	inv.owned[i] = true
	if fresh && i.Equippable() && i != ItemBombs {
		inv.Equipped = i
	}
}

// Equip binds an owned item to the use button.
func (inv *Inventory) Equip(i Item) bool {
	if !i.Equippable() || !inv.Has(i) {
		return false
	}
	inv.Equipped = i
	return true
}

// Glove returns the strongest lifting tier owned.
func (inv *Inventory) Glove() Glove {
	switch {
	case inv.Has(ItemTitanMitt):
		return GloveTitan
	case inv.Has(ItemPowerGlove):
		return GlovePower
	}
	return GloveNone
}

// Items lists owned equipment in save-name order.
func (inv *Inventory) Items() []string {
	var out []string
	for i := ItemNone + 1; i < itemCount; i++ {
		if inv.owned[i] {
			out = append(out, i.String())
		}
	}
	sort.Strings(out)
	return out
}

// Keys returns the small key count.
func (inv *Inventory) Keys() int {
	return inv.keys.Current
}

// AddKeys adds small keys.
func (inv *Inventory) AddKeys(n int) {
	inv.keys.Add(n)
}

// SpendKey consumes one small key.
func (inv *Inventory) SpendKey() bool {
	return inv.keys.Spend(1)
}

// HasBossKey reports whether the dungeon's boss key was collected.
func (inv *Inventory) HasBossKey(dungeon string) bool {
	return inv.BossKeys[dungeon]
}

// Opened reports whether a chest, door or one-time link was used for good.
func (inv *Inventory) Opened(key string) bool {
	return inv.opened[key]
}

// MarkOpened records a chest, door or one-time link.
func (inv *Inventory) MarkOpened(key string) {
	inv.opened[key] = true
}

// openedKey names an object of a room in the opened set.
func openedKey(room, name string) string {
	return room + "#" + name
}

// Export copies the inventory into a profile.
func (inv *Inventory) Export(p *profile.Profile) {
	p.Magic = inv.Magic.Current
	p.MaxMagic = inv.Magic.Max
	p.Rupees = inv.Rupees
	p.Bombs = inv.Bombs.Current
	p.Arrows = inv.Arrows.Current
	p.Keys = inv.keys.Current
	p.Items = inv.Items()
	p.Equipped = inv.Equipped.String()
	p.BossKeys = keysOf(inv.BossKeys)
	p.Maps = keysOf(inv.Maps)
	p.Compasses = keysOf(inv.Compasses)
	p.Opened = keysOf(inv.opened)
	p.HeartPieces = inv.HeartPieces
}

// InventoryFromProfile rebuilds an inventory from a saved profile.
// Unknown item names are skipped.
func InventoryFromProfile(p profile.Profile, player config.DungeonPlayer) *Inventory {
	inv := &Inventory{
		Magic:       combat.Pool{Current: p.Magic, Max: p.MaxMagic},
		Bombs:       combat.Pool{Max: player.AmmoCap},
		Arrows:      combat.Pool{Max: player.AmmoCap},
		Rupees:      p.Rupees,
		BossKeys:    setOf(p.BossKeys),
		Maps:        setOf(p.Maps),
		Compasses:   setOf(p.Compasses),
		HeartPieces: p.HeartPieces,
		opened:      setOf(p.Opened),
	}
	if inv.Magic.Max == 0 {
		inv.Magic.Max = player.MaxMagic
	}
	inv.Bombs.Add(p.Bombs)
	inv.Arrows.Add(p.Arrows)
	inv.keys.Add(p.Keys)
	for _, name := range p.Items {
		if i, ok := ParseItem(name); ok {
			inv.owned[i] = true
		}
	}
	if i, ok := ParseItem(p.Equipped); ok && inv.Has(i) && i.Equippable() {
		inv.Equipped = i
	}
	return inv
}

func keysOf(m map[string]bool) []string {
	var out []string
	for k, v := range m {
		if v {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func setOf(list []string) map[string]bool {
	m := make(map[string]bool, len(list))
	for _, s := range list {
		m[s] = true
	}
	return m
}

// facingName and parseFacing move the player's facing through the profile.
func facingName(d core.Direction) string {
	return d.String()
}

func parseFacing(s string) core.Direction {
	if d := core.ParseDirection(s); d != core.DirNone {
		return d
	}
	return core.DirDown
}
