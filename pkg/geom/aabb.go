package geom

// AABB 轴对齐包围盒
type AABB struct {
	Min Vec3
	Max Vec3
}

// BoxAt 以中心点和半尺寸构造包围盒
func BoxAt(center, half Vec3) AABB {
	return AABB{
		Min: center.Sub(half),
		Max: center.Add(half),
	}
}

// Intersects 检测两个包围盒是否相交，贴面也算相交
func (b AABB) Intersects(o AABB) bool {
	if o.Max.X < b.Min.X || o.Min.X > b.Max.X {
		return false
	}
	if o.Max.Y < b.Min.Y || o.Min.Y > b.Max.Y {
		return false
	}
	if o.Max.Z < b.Min.Z || o.Min.Z > b.Max.Z {
		return false
	}
	return true
}

// Contains 点是否在包围盒内
func (b AABB) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Center 包围盒中心
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Translate 平移包围盒
func (b AABB) Translate(d Vec3) AABB {
	return AABB{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}
