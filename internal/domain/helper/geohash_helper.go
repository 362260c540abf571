package helper

import (
	"strings"

	"github.com/paulmach/orb"
)

// geohashBase32 ジオハッシュで使用する32文字のアルファベット（a,i,l,oは除外）
const geohashBase32 = "0123456789bcdefghjkmnpqrstuvwxyz"

// GeohashEncode 緯度経度を指定精度のジオハッシュ文字列にエンコードする
// 経度→緯度の順に範囲を二分探索し、5ビットごとに1文字を出力する
func GeohashEncode(lat, lng float64, precision int) string {
	latMin, latMax := -90.0, 90.0
	lngMin, lngMax := -180.0, 180.0

	var hash strings.Builder
	idx := 0
	bit := 0
	evenBit := true

	for hash.Len() < precision {
		if evenBit {
			lngMid := (lngMin + lngMax) / 2
			if lng >= lngMid {
				idx = idx<<1 + 1
				lngMin = lngMid
			} else {
				idx = idx << 1
				lngMax = lngMid
			}
		} else {
			latMid := (latMin + latMax) / 2
			if lat >= latMid {
				idx = idx<<1 + 1
				latMin = latMid
			} else {
				idx = idx << 1
				latMax = latMid
			}
		}
		evenBit = !evenBit

		bit++
		if bit == 5 {
			hash.WriteByte(geohashBase32[idx])
			bit = 0
			idx = 0
		}
	}

	return hash.String()
}

// CellBound ジオハッシュセルの境界ボックスを復元する
// エンコード時の二分探索を再生して矩形範囲を求める
func CellBound(hash string) orb.Bound {
	latMin, latMax := -90.0, 90.0
	lngMin, lngMax := -180.0, 180.0
	evenBit := true

	for i := 0; i < len(hash); i++ {
		cd := strings.IndexByte(geohashBase32, hash[i])
		if cd < 0 {
			continue
		}
		for j := 4; j >= 0; j-- {
			bit := (cd >> uint(j)) & 1
			if evenBit {
				lngMid := (lngMin + lngMax) / 2
				if bit == 1 {
					lngMin = lngMid
				} else {
					lngMax = lngMid
				}
			} else {
				latMid := (latMin + latMax) / 2
				if bit == 1 {
					latMin = latMid
				} else {
					latMax = latMid
				}
			}
			evenBit = !evenBit
		}
	}

	return orb.Bound{
		Min: orb.Point{lngMin, latMin},
		Max: orb.Point{lngMax, latMax},
	}
}
