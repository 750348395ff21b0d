package domain

// Dataset 有序的记录序列（长度 = 配置的样本数，ID 唯一）
// 整个数据集一次性生成，各管线阶段只做原地修改，不做部分持久化
type Dataset []*Record

// Prevalence 当前阳性标签占比（len==0 时返回 0）
func (d Dataset) Prevalence() float64 {
	if len(d) == 0 {
		return 0
	}
	positive := 0
	for _, rec := range d {
		if rec.LabelHypertension == 1 {
			positive++
		}
	}
	return float64(positive) / float64(len(d))
}

// PositiveCount 阳性标签行数
func (d Dataset) PositiveCount() int {
	n := 0
	for _, rec := range d {
		if rec.LabelHypertension == 1 {
			n++
		}
	}
	return n
}
