package geometry

import "image"

// Components finds the 8-connected foreground components of a binary mask and
// returns the axis-aligned bounding rectangle of each, in scan order.
// Foreground is any value above zero.
func Components(mask *image.Gray) []image.Rectangle {
	bounds := mask.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	visited := make([]bool, width*height)
	var rects []image.Rectangle

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if visited[y*width+x] || mask.Pix[y*mask.Stride+x] == 0 {
				continue
			}
			rects = append(rects, traceComponent(mask, visited, x, y, width, height))
		}
	}
	return rects
}

// traceComponent flood-fills one component from a seed pixel and returns its
// bounding rectangle.
func traceComponent(mask *image.Gray, visited []bool, startX, startY, width, height int) image.Rectangle {
	minX, minY := startX, startY
	maxX, maxY := startX, startY

	stack := []image.Point{{X: startX, Y: startY}}
	visited[startY*width+startX] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || ny < 0 || nx >= width || ny >= height {
					continue
				}
				idx := ny*width + nx
				if visited[idx] || mask.Pix[ny*mask.Stride+nx] == 0 {
					continue
				}
				visited[idx] = true
				stack = append(stack, image.Point{X: nx, Y: ny})
			}
		}
	}

	// Max coordinates are inclusive pixel indices; rectangles are half-open.
	return image.Rect(minX, minY, maxX+1, maxY+1)
}
